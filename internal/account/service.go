package account

import (
	"errors"
	"strings"

	"scanlens-api/internal/common"
	"scanlens-api/internal/events"

	"go.uber.org/zap"
)

// Service implements the account operations: register-or-login by phone,
// profile retrieval, and settings updates.
type Service interface {
	RegisterOrLogin(req RegisterRequest) (*AuthResult, error)
	GetProfile(userID common.UserID) (*User, error)
	UpdateSettings(req SettingsRequest) error
}

type accountService struct {
	eventBus   events.EventBus
	logger     *zap.Logger
	repository Repository
}

func NewService(eventBus events.EventBus, logger *zap.Logger, repository Repository) Service {
	return &accountService{
		eventBus:   eventBus,
		logger:     logger,
		repository: repository,
	}
}

// RegisterOrLogin returns the existing user for a known phone (idempotent
// login) or inserts a new row. A duplicate-key race on the insert is resolved
// by fetching the winning row and reporting a login.
func (s *accountService) RegisterOrLogin(req RegisterRequest) (*AuthResult, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, common.ValidationError{Field: "phone", Message: "phone is required"}
	}

	existing, err := s.repository.GetByPhone(phone)
	if err == nil {
		s.logger.Info("User logged in by phone", zap.Int64("user_id", int64(existing.ID)))
		return &AuthResult{User: existing, Registered: false}, nil
	}
	var notFound common.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	user := &User{
		Phone:     phone,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	err = s.repository.Create(user)
	if errors.Is(err, ErrDuplicate) {
		// Lost the registration race; the winning row is the account.
		winner, getErr := s.repository.GetByPhone(phone)
		if getErr != nil {
			return nil, getErr
		}
		return &AuthResult{User: winner, Registered: false}, nil
	}
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.TopicUserRegistered, events.UserRegistered{
		Event:  events.NewEvent(),
		UserID: user.ID,
		Phone:  user.Phone,
	})

	return &AuthResult{User: user, Registered: true}, nil
}

func (s *accountService) GetProfile(userID common.UserID) (*User, error) {
	return s.repository.GetByID(userID)
}

// UpdateSettings applies the flag when present; a nil flag is a no-op.
// Both cases acknowledge success.
func (s *accountService) UpdateSettings(req SettingsRequest) error {
	if req.UserID == 0 {
		return common.ValidationError{Field: "user_id", Message: "user_id is required"}
	}

	if req.AIResponsesEnabled == nil {
		return nil
	}

	if err := s.repository.UpdateSettings(req.UserID, *req.AIResponsesEnabled); err != nil {
		return err
	}

	s.eventBus.Publish(events.TopicSettingsUpdated, events.SettingsUpdated{
		Event:              events.NewEvent(),
		UserID:             req.UserID,
		AIResponsesEnabled: *req.AIResponsesEnabled,
	})

	return nil
}
