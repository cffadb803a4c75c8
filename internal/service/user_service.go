package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"webapp/internal/domain"
	"webapp/internal/repository"
	"webapp/internal/security"
)

const defaultStoreTimeout = 5 * time.Second

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	hasher   security.PasswordHasher
	validate *validator.Validate
	timeout  time.Duration

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, hasher security.PasswordHasher, storeTimeout time.Duration) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &UserService{
		logger:   logger,
		users:    users,
		hasher:   hasher,
		validate: newValidator(),
		timeout:  storeTimeout,
	}
}

// RegisterInput son los datos de alta de un usuario.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100,nonul"`
	LastName  string `json:"last_name" validate:"required,max=100,nonul"`
	Password  string `json:"password" validate:"required,password"`
}

// UpdateSelfInput lista los campos que el propio usuario puede cambiar.
type UpdateSelfInput struct {
	FirstName *string `json:"first_name" validate:"omitnil,min=1,max=100,nonul"`
	LastName  *string `json:"last_name" validate:"omitnil,min=1,max=100,nonul"`
	Password  *string `json:"password" validate:"omitnil,password"`
}

// Register valida, hashea la contraseña e inserta el usuario. Un email
// repetido devuelve domain.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil || s.hasher == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	input.Email = normalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := s.validate.Struct(input); err != nil {
		return domain.User{}, invalidInput(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Authenticate verifica email y contraseña. Usuario inexistente y
// contraseña incorrecta devuelven el mismo domain.ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil || s.hasher == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// mismo costo de bcrypt que un usuario existente
			_ = s.hasher.Verify(password, s.fallbackHash())
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// GetSelf relee al principal desde el store.
func (s *UserService) GetSelf(ctx context.Context, principal domain.User) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateSelf cambia nombre, apellido y/o contraseña del principal. El id
// sale siempre del principal, nunca del cliente.
func (s *UserService) UpdateSelf(ctx context.Context, principal domain.User, input UpdateSelfInput) (domain.User, error) {
	if s.users == nil || s.hasher == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	input.FirstName = trimPtr(input.FirstName)
	input.LastName = trimPtr(input.LastName)
	if err := s.validate.Struct(input); err != nil {
		return domain.User{}, invalidInput(err)
	}

	upd := domain.UserUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}
	if upd.IsEmpty() {
		return domain.User{}, fmt.Errorf("%w: no updatable fields supplied", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	user, err := s.users.Update(ctx, principal.ID, upd)
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user updated", zap.String("user_id", user.ID))
	return user, nil
}

func (s *UserService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.logger.Warn("fallback hash failed", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}
