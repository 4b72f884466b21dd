package ports

import (
	"context"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// EditUserInput carries an account edit. Password is a "no change" signal
// when empty; Email and Role are written unconditionally, including back to
// their zero values.
type EditUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// DeleteUserInput selects the delete target. Exactly one selector must be
// set; when both are given the ID wins.
type DeleteUserInput struct {
	ID       string
	Username string
}

// AuthService covers account management and credential verification.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Edit(ctx context.Context, input EditUserInput) (*domain.User, error)
	Delete(ctx context.Context, identity domain.Identity, input DeleteUserInput) error
}
