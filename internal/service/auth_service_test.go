package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"crmhub/internal/auth"
	apperrors "crmhub/internal/errors"
	"crmhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListActive(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// stubMailer records welcome mails without touching the network.
type stubMailer struct {
	sent chan string
}

func newStubMailer() *stubMailer {
	return &stubMailer{sent: make(chan string, 1)}
}

func (m *stubMailer) SendWelcome(ctx context.Context, to, firstName string) error {
	select {
	case m.sent <- to:
	default:
	}
	return nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(MockUserRepository)
	mail := newStubMailer()
	svc := NewAuthService(repo, auth.NewJWTService("test-secret"), mail)

	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = uuid.New()
	}).Return(nil)

	user, token, err := svc.Register(context.Background(), "  Jane@Example.COM ", "s3cret-password", "Jane", "Doe")
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, model.RoleStaff, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, auth.ComparePassword("s3cret-password", user.PasswordHash))

	claims, err := auth.NewJWTService("test-secret").Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)

	select {
	case to := <-mail.sent:
		assert.Equal(t, "jane@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a welcome mail")
	}
	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, auth.NewJWTService("test-secret"), newStubMailer())

	existing := &model.User{ID: uuid.New(), Email: "jane@example.com"}
	// Duplicates are caught regardless of the casing the caller used.
	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil)

	_, _, err := svc.Register(context.Background(), "Jane@Example.com", "s3cret-password", "Jane", "Doe")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, auth.NewJWTService("test-secret"), newStubMailer())

	hash, err := auth.HashPassword("s3cret-password")
	assert.NoError(t, err)
	user := &model.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         model.RoleManager,
		FirstName:    "Jane",
		LastName:     "Doe",
		IsActive:     true,
	}
	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	got, token, err := svc.Login(context.Background(), "jane@example.com", "s3cret-password")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := auth.NewJWTService("test-secret").Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, model.RoleManager, claims.Role)
}

func TestAuthService_Login_Failures(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		user     *model.User
		findErr  error
		password string
	}{
		{
			name:     "unknown email",
			findErr:  gorm.ErrRecordNotFound,
			password: "s3cret-password",
		},
		{
			name:     "wrong password",
			user:     &model.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hash, IsActive: true},
			password: "wrong-password",
		},
		{
			name:     "inactive account",
			user:     &model.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hash, IsActive: false},
			password: "s3cret-password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := NewAuthService(repo, auth.NewJWTService("test-secret"), newStubMailer())
			repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(tt.user, tt.findErr)

			_, _, err := svc.Login(context.Background(), "jane@example.com", tt.password)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_GetUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, auth.NewJWTService("test-secret"), newStubMailer())

	id := uuid.New()
	user := &model.User{ID: id, Email: "jane@example.com"}
	repo.On("FindByID", mock.Anything, id).Return(user, nil)

	got, err := svc.GetUser(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = svc.GetUser(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthService_GetUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, auth.NewJWTService("test-secret"), newStubMailer())

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetUser(context.Background(), id.String())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
