package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilehub/profilehub-go/internal/model"
	"github.com/profilehub/profilehub-go/internal/repository"
	"github.com/profilehub/profilehub-go/internal/session"
)

type testEnv struct {
	repo     *repository.UserRepository
	sessions *session.Manager
	accounts *AccountService
	profiles *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := repository.NewUserRepository(repository.NewFileStore(filepath.Join(t.TempDir(), "db.json")))
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", session.Options{})
	return &testEnv{
		repo:     repo,
		sessions: sessions,
		accounts: NewAccountService(repo, sessions),
		profiles: NewProfileService(repo),
	}
}

func (e *testEnv) signup(t *testing.T, name, email, password string) AuthResult {
	t.Helper()
	res, err := e.accounts.Signup(context.Background(), model.SignupRequest{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return res
}

func TestSignup_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  model.SignupRequest
	}{
		{name: "empty name", req: model.SignupRequest{Email: "a@b.c", Password: "pw"}},
		{name: "empty email", req: model.SignupRequest{Name: "A", Password: "pw"}},
		{name: "empty password", req: model.SignupRequest{Name: "A", Email: "a@b.c"}},
		{name: "all empty", req: model.SignupRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.accounts.Signup(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrSignupFieldsRequired)
		})
	}
}

func TestSignup_PasswordTooLong(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Signup(context.Background(), model.SignupRequest{
		Name: "A", Email: "a@b.c", Password: strings.Repeat("x", 73),
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestSignup_CreatesUserAndSession(t *testing.T) {
	env := newTestEnv(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env.accounts.now = func() time.Time { return fixed }

	res := env.signup(t, "Ada", "Ada@Example.com", "secret")

	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, "Ada", res.User.Name)
	assert.Equal(t, "Ada@Example.com", res.User.Email)
	assert.Empty(t, res.User.Bio)
	assert.Empty(t, res.User.Avatar)
	assert.NotEmpty(t, res.Ticket.Token)

	stored, err := env.repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, stored.ID)
	assert.Equal(t, fixed.UnixMilli(), stored.CreatedAt)
	assert.NotEqual(t, "secret", stored.PasswordHash)

	userID, err := env.sessions.Resolve(context.Background(), res.Ticket.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestSignup_EmailTakenIgnoringCase(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Ada", "ada@example.com", "secret")

	_, err := env.accounts.Signup(context.Background(), model.SignupRequest{
		Name: "Other", Email: "ADA@EXAMPLE.COM", Password: "other",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_AssignsDistinctIDs(t *testing.T) {
	env := newTestEnv(t)

	a := env.signup(t, "A", "a@example.com", "pw")
	b := env.signup(t, "B", "b@example.com", "pw")

	assert.NotEqual(t, a.User.ID, b.User.ID)
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Login(context.Background(), model.LoginRequest{Email: "a@b.c"}, "")
	assert.ErrorIs(t, err, ErrLoginFieldsRequired)

	_, err = env.accounts.Login(context.Background(), model.LoginRequest{Password: "pw"}, "")
	assert.ErrorIs(t, err, ErrLoginFieldsRequired)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Ada", "ada@example.com", "secret")

	_, errWrong := env.accounts.Login(context.Background(), model.LoginRequest{Email: "ada@example.com", Password: "nope"}, "")
	_, errUnknown := env.accounts.Login(context.Background(), model.LoginRequest{Email: "ghost@example.com", Password: "secret"}, "")

	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada", "ada@example.com", "secret")

	res, err := env.accounts.Login(context.Background(), model.LoginRequest{Email: "ADA@example.com", Password: "secret"}, "")
	require.NoError(t, err)
	assert.Equal(t, created.User, res.User)

	userID, err := env.sessions.Resolve(context.Background(), res.Ticket.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, userID)
}

func TestLogin_RevokesPreviousSession(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada", "ada@example.com", "secret")

	res, err := env.accounts.Login(context.Background(), model.LoginRequest{Email: "ada@example.com", Password: "secret"}, created.Ticket.Token)
	require.NoError(t, err)

	_, err = env.sessions.Resolve(context.Background(), created.Ticket.Token)
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = env.sessions.Resolve(context.Background(), res.Ticket.Token)
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada", "ada@example.com", "secret")

	require.NoError(t, env.accounts.Logout(context.Background(), created.Ticket.Token))

	_, err := env.sessions.Resolve(context.Background(), created.Ticket.Token)
	assert.ErrorIs(t, err, session.ErrNoSession)

	// no session at all still succeeds
	assert.NoError(t, env.accounts.Logout(context.Background(), ""))
}

type brokenRepo struct {
	err  error
	user *model.User
}

func (r *brokenRepo) Create(context.Context, *model.User) error { return r.err }
func (r *brokenRepo) GetByEmail(context.Context, string) (*model.User, error) {
	if r.user != nil {
		return r.user, nil
	}
	return nil, r.err
}
func (r *brokenRepo) GetByID(context.Context, string) (*model.User, error) { return nil, r.err }
func (r *brokenRepo) Update(context.Context, string, func(*model.User)) (*model.User, error) {
	return nil, r.err
}

func TestAccountService_StorageErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", session.Options{})
	svc := NewAccountService(&brokenRepo{err: boom}, sessions)

	_, err := svc.Signup(context.Background(), model.SignupRequest{Name: "A", Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, boom)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "pw"}, "")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MalformedStoredHashIsInternal(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", session.Options{})
	svc := NewAccountService(&brokenRepo{user: &model.User{ID: "u1", PasswordHash: "garbage"}}, sessions)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "pw"}, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
