// File: internal/repository/user/interface.go
package user

import (
	"context"

	"github.com/dishcovery/go-dishcovery/internal/domain"
)

// UserRepository handles account data operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}
