package repository

import (
	"context"
	"errors"

	"github.com/profilehub/profilehub-go/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository handles user persistence on top of a FileStore.
type UserRepository struct {
	store *FileStore
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *FileStore) *UserRepository {
	return &UserRepository{store: store}
}

// Create appends user to the collection and persists it.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	c, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	c.Users = append(c.Users, *user)
	return r.store.Save(ctx, c)
}

// GetByEmail retrieves a user by email address, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	c, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range c.Users {
		if c.Users[i].EmailMatches(email) {
			return &c.Users[i], nil
		}
	}

	return nil, ErrUserNotFound
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	c, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexByID(c.Users, id); i >= 0 {
		return &c.Users[i], nil
	}

	return nil, ErrUserNotFound
}

// Update loads the collection, applies fn to the user with the given id and
// saves the whole collection back in one read-modify-write cycle.
func (r *UserRepository) Update(ctx context.Context, id string, fn func(*model.User)) (*model.User, error) {
	c, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexByID(c.Users, id)
	if i < 0 {
		return nil, ErrUserNotFound
	}

	fn(&c.Users[i])

	if err := r.store.Save(ctx, c); err != nil {
		return nil, err
	}

	updated := c.Users[i]
	return &updated, nil
}

// List returns every stored user in insertion order. It never creates the
// data file.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	c, err := r.store.LoadExisting(ctx)
	if err != nil {
		return nil, err
	}
	return c.Users, nil
}

func indexByID(users []model.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
