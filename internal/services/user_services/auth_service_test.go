// File: internal/services/user_services/auth_service_test.go
package user_services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishcovery/go-dishcovery/internal/domain"
	"github.com/dishcovery/go-dishcovery/internal/repository/user"
	"github.com/dishcovery/go-dishcovery/internal/services"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	nextID uint
	users  map[uint]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{nextID: 1, users: make(map[uint]*domain.User)}
}

func (r *fakeUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	stored := *u
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func newTestAuthService() (*AuthService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return NewAuthService(repo, "test-secret-key", &services.NoOpLogger{}), repo
}

func TestRegisterLoginValidateRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "correct horse battery", created.Password, "password must be stored hashed")

	account, token, err := svc.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestRegisterRejectsTakenIdentity(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "password123")
	assert.Error(t, err)

	_, err = svc.Register(ctx, "other", "alice@example.com", "password123")
	assert.Error(t, err)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, repo := newTestAuthService()

	_, err := svc.Register(context.Background(), "bob", "bob@example.com", "short")
	assert.Error(t, err)
	assert.Empty(t, repo.users)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Login(context.Background(), "", "password123")
	assert.Error(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "")
	assert.Error(t, err)
}

func TestValidateJWTTokenRejectsForgedToken(t *testing.T) {
	svc, _ := newTestAuthService()
	other := NewAuthService(newFakeUserRepository(), "different-secret", &services.NoOpLogger{})

	ctx := context.Background()
	_, err := other.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	_, forged, err := other.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateJWTToken(forged)
	assert.Error(t, err)
}

func TestValidateJWTTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.ValidateJWTToken("not-a-token")
	assert.Error(t, err)
}
