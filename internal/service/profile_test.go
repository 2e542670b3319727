package service

import (
	"context"
	"errors"
	"testing"

	"github.com/profilehub/profilehub-go/internal/model"
)

func strPtr(s string) *string { return &s }

func TestGetCurrent_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profiles.GetCurrent(context.Background(), "")
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("GetCurrent() error = %v, want %v", err, ErrNotLoggedIn)
	}
}

func TestGetCurrent_DanglingSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profiles.GetCurrent(context.Background(), "no-such-user")
	if !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("GetCurrent() error = %v, want %v", err, ErrSessionInvalid)
	}
}

func TestGetCurrent_ReturnsSignupFields(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada", "ada@example.com", "secret")

	me, err := env.profiles.GetCurrent(context.Background(), created.User.ID)
	if err != nil {
		t.Fatalf("GetCurrent() unexpected error: %v", err)
	}
	if me != created.User {
		t.Errorf("GetCurrent() = %+v, want %+v", me, created.User)
	}
}

func TestUpdateCurrent_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada", "ada@example.com", "secret")
	ctx := context.Background()

	if _, err := env.profiles.UpdateCurrent(ctx, created.User.ID, model.ProfileUpdate{Avatar: strPtr("https://img/a.png")}); err != nil {
		t.Fatalf("UpdateCurrent() unexpected error: %v", err)
	}

	me, err := env.profiles.UpdateCurrent(ctx, created.User.ID, model.ProfileUpdate{Bio: strPtr("x")})
	if err != nil {
		t.Fatalf("UpdateCurrent() unexpected error: %v", err)
	}

	want := model.UserResponse{
		ID:     created.User.ID,
		Name:   "Ada",
		Email:  "ada@example.com",
		Bio:    "x",
		Avatar: "https://img/a.png",
	}
	if me != want {
		t.Errorf("UpdateCurrent() = %+v, want %+v", me, want)
	}

	stored, err := env.repo.GetByID(ctx, created.User.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if stored.Bio != "x" {
		t.Errorf("stored bio = %q, want %q", stored.Bio, "x")
	}
	if stored.PasswordHash == "" {
		t.Error("stored password hash was lost by the update")
	}
}

func TestUpdateCurrent_AllFieldsAndEmptyStrings(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada", "ada@example.com", "secret")
	ctx := context.Background()

	me, err := env.profiles.UpdateCurrent(ctx, created.User.ID, model.ProfileUpdate{
		Name: strPtr("Ada L."), Bio: strPtr("mathematician"), Avatar: strPtr("https://img/ada.png"),
	})
	if err != nil {
		t.Fatalf("UpdateCurrent() unexpected error: %v", err)
	}
	if me.Name != "Ada L." {
		t.Errorf("UpdateCurrent() name = %q, want %q", me.Name, "Ada L.")
	}

	me, err = env.profiles.UpdateCurrent(ctx, created.User.ID, model.ProfileUpdate{Bio: strPtr("")})
	if err != nil {
		t.Fatalf("UpdateCurrent() unexpected error: %v", err)
	}
	if me.Bio != "" {
		t.Errorf("UpdateCurrent() bio = %q, want empty", me.Bio)
	}
	if me.Name != "Ada L." {
		t.Errorf("UpdateCurrent() name = %q, want %q", me.Name, "Ada L.")
	}
}

func TestUpdateCurrent_EmptyUpdateKeepsRecord(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Ada", "ada@example.com", "secret")

	me, err := env.profiles.UpdateCurrent(context.Background(), created.User.ID, model.ProfileUpdate{})
	if err != nil {
		t.Fatalf("UpdateCurrent() unexpected error: %v", err)
	}
	if me != created.User {
		t.Errorf("UpdateCurrent() = %+v, want %+v", me, created.User)
	}
}

func TestUpdateCurrent_AuthErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		want   error
	}{
		{name: "no session", userID: "", want: ErrNotLoggedIn},
		{name: "dangling session", userID: "ghost", want: ErrSessionInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.profiles.UpdateCurrent(ctx, tt.userID, model.ProfileUpdate{Bio: strPtr("x")})
			if !errors.Is(err, tt.want) {
				t.Errorf("UpdateCurrent() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProfileService_StorageErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewProfileService(&brokenRepo{err: boom})

	if _, err := svc.GetCurrent(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Errorf("GetCurrent() error = %v, want %v", err, boom)
	}
	if _, err := svc.UpdateCurrent(context.Background(), "u1", model.ProfileUpdate{}); !errors.Is(err, boom) {
		t.Errorf("UpdateCurrent() error = %v, want %v", err, boom)
	}
}
