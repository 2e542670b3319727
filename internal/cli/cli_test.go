package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilehub/profilehub-go/internal/model"
	"github.com/profilehub/profilehub-go/internal/repository"
)

func TestUsersList_PrintsPublicProfiles(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "db.json")
	store := repository.NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), model.Collection{Users: []model.User{
		{ID: "u1", Name: "Ada", Email: "ada@example.com", PasswordHash: "$2a$10$secret", Bio: "hi"},
	}}))

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"users", "list", "--data", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.NotContains(t, out.String(), "passwordHash")
	assert.NotContains(t, out.String(), "$2a$10$secret")

	var users []model.UserResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, model.UserResponse{ID: "u1", Name: "Ada", Email: "ada@example.com", Bio: "hi"}, users[0])
}

func TestUsersList_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "none.json")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"users", "list", "--data", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.JSONEq(t, `[]`, out.String())
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestServe_RejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"serve", "--data", filepath.Join(t.TempDir(), "db.json")})
	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "SESSION_SECRET")
}
