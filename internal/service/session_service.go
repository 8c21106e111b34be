package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_booking_bot/internal/model"
)

// SessionService вход по email без пароля. Сессия хранит снимок пользователя.
type SessionService struct {
	*core
}

// Login делает пользователя с указанным email текущим для сессии
func (s *SessionService) Login(ctx context.Context, sessionKey, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}

	if err := s.store.Sessions.SetCurrent(ctx, sessionKey, user); err != nil {
		return nil, fmt.Errorf("set current user: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("session", sessionKey),
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

func (s *SessionService) Logout(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Sessions.SetCurrent(ctx, sessionKey, nil); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}

	s.logger.Info("User logged out", zap.String("session", sessionKey))
	return nil
}

// Current возвращает пользователя сессии или nil, если вход не выполнен
func (s *SessionService) Current(ctx context.Context, sessionKey string) (*model.User, error) {
	user, err := s.store.Sessions.Current(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return user, nil
}
