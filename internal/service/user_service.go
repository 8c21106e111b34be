package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

type UserService struct {
	*core
}

// CreateUserRequest данные нового пользователя
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"required,max=100"`
	Role  string `json:"role" validate:"required,oneof=student teacher admin"`
}

// defaultUsers создаются при первом запуске на пустом хранилище
var defaultUsers = []CreateUserRequest{
	{Email: "admin@gym.com", Name: "Admin User", Role: string(model.RoleAdmin)},
	{Email: "teacher@gym.com", Name: "John Teacher", Role: string(model.RoleTeacher)},
	{Email: "student@gym.com", Name: "Jane Student", Role: string(model.RoleStudent)},
}

// CreateUser создаёт пользователя. Email должен быть уникальным без учёта регистра.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked(ctx, req)
}

func (s *UserService) createLocked(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	existing, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, req.Email)
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      model.UserRole(req.Role),
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// Seed заполняет пустое хранилище пользователями по умолчанию.
// Возвращает true, если пользователи были созданы.
func (s *UserService) Seed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users.List(ctx)
	if err != nil {
		return false, fmt.Errorf("get users: %w", err)
	}
	if len(users) > 0 {
		return false, nil
	}

	for _, req := range defaultUsers {
		if _, err := s.createLocked(ctx, req); err != nil {
			return false, fmt.Errorf("seed %s: %w", req.Email, err)
		}
	}

	s.logger.Info("Default users seeded", zap.Int("count", len(defaultUsers)))
	return true, nil
}

// List возвращает всех пользователей в порядке создания
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

// ListByRole возвращает пользователей одной роли
func (s *UserService) ListByRole(ctx context.Context, role model.UserRole) ([]*model.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*model.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	return user, nil
}
