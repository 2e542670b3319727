package model

import "strings"

// User represents an account record as persisted in the data file.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Bio          string `json:"bio"`
	Avatar       string `json:"avatar"`
	CreatedAt    int64  `json:"createdAt"` // unix milliseconds
}

// EmailMatches reports whether email equals the user's email, ignoring case.
func (u *User) EmailMatches(email string) bool {
	return strings.EqualFold(u.Email, email)
}

// Public returns the view of the user that is safe to send to clients.
func (u *User) Public() UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Bio:    u.Bio,
		Avatar: u.Avatar,
	}
}

// UserResponse represents user data safe for API responses (no credential hash).
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// UserEnvelope wraps a user in the {"user": ...} response shape.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries the editable profile fields. A nil field is left unchanged.
type ProfileUpdate struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// Collection is the whole persisted document.
type Collection struct {
	Users []User `json:"users"`
}
