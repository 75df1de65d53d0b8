package models

import (
	"context"
	"time"
)

// User represents a registered user in the system
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest carries normalized input for creating a user.
// Name is trimmed, Email is trimmed and lower-cased, Age is floored.
type CreateUserRequest struct {
	Name  string
	Email string
	Age   int
}

// UpdateUserRequest is a field-level patch. Nil fields are left untouched.
type UpdateUserRequest struct {
	Name  *string
	Email *string
	Age   *int
}

// Empty reports whether the patch contains no fields.
func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Age == nil
}

// UserFilters narrows and paginates user listings. Name and Email are
// partial-match terms; MinAge and MaxAge bound the age range inclusively.
type UserFilters struct {
	Name   string
	Email  string
	MinAge *int
	MaxAge *int
	Page   int
	Limit  int
}

// Pagination describes the page of results returned by a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// UserRepository manages user persistence
type UserRepository interface {
	Create(ctx context.Context, user CreateUserRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Select(ctx context.Context, filters UserFilters) ([]User, int, error)
	Update(ctx context.Context, id int64, patch UpdateUserRequest) error
	Delete(ctx context.Context, id int64) (bool, error)

	// EmailExists reports whether another user already holds email.
	// excludeID > 0 excludes that user from the check.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}
