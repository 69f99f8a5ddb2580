package identity

import (
	"context"
	"errors"
	"strings"

	"scanlens-api/internal/account"
	"scanlens-api/internal/common"
	"scanlens-api/internal/events"

	"go.uber.org/zap"
)

// SyntheticPhonePrefix builds the placeholder phone for users registered via
// Yandex without a phone number.
const SyntheticPhonePrefix = "yandex_"

// AuthorizeRequest carries a code exchange. UserID selects the linking flow
// when present; its absence means standalone login or registration.
type AuthorizeRequest struct {
	Code   string
	UserID *common.UserID
}

// AuthResult is the outcome of a code exchange.
type AuthResult struct {
	User        *account.User
	YandexEmail string
	Registered  bool
	Linked      bool
}

// Service implements the identity-link operations.
type Service interface {
	AuthURL() (string, error)
	Authorize(ctx context.Context, req AuthorizeRequest) (*AuthResult, error)
}

type identityService struct {
	eventBus events.EventBus
	logger   *zap.Logger
	provider Provider
	users    account.Repository
}

func NewService(eventBus events.EventBus, logger *zap.Logger, provider Provider, users account.Repository) Service {
	return &identityService{
		eventBus: eventBus,
		logger:   logger,
		provider: provider,
		users:    users,
	}
}

func (s *identityService) AuthURL() (string, error) {
	return s.provider.AuthURL()
}

// Authorize exchanges the code and either links the identity to an existing
// user or logs in / registers by the external identity id.
func (s *identityService) Authorize(ctx context.Context, req AuthorizeRequest) (*AuthResult, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, common.ValidationError{Field: "code", Message: "authorization code is required"}
	}

	profile, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		return s.link(*req.UserID, profile)
	}
	return s.loginOrRegister(profile)
}

// link attaches the identity to an existing user row. It never creates a
// user.
func (s *identityService) link(userID common.UserID, profile *Profile) (*AuthResult, error) {
	user, err := s.users.LinkYandex(userID, profile.ID, profile.Email)
	if err != nil {
		if errors.Is(err, account.ErrDuplicate) {
			return nil, common.ValidationError{Field: "user_id", Message: "yandex account is already linked to another user"}
		}
		return nil, err
	}

	s.eventBus.Publish(events.TopicIdentityLinked, events.IdentityLinked{
		Event:    events.NewEvent(),
		UserID:   user.ID,
		YandexID: profile.ID,
	})

	return &AuthResult{User: user, YandexEmail: profile.Email, Linked: true}, nil
}

func (s *identityService) loginOrRegister(profile *Profile) (*AuthResult, error) {
	existing, err := s.users.GetByYandexID(profile.ID)
	if err == nil {
		s.logger.Info("User logged in via Yandex", zap.Int64("user_id", int64(existing.ID)))
		return &AuthResult{User: existing, YandexEmail: profile.Email}, nil
	}
	var notFound common.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	yandexID := profile.ID
	yandexEmail := profile.Email
	user := &account.User{
		Phone:       SyntheticPhonePrefix + profile.ID,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		YandexID:    &yandexID,
		YandexEmail: &yandexEmail,
	}
	err = s.users.Create(user)
	if errors.Is(err, account.ErrDuplicate) {
		// Lost a concurrent first-registration race for this identity.
		winner, getErr := s.users.GetByYandexID(profile.ID)
		if getErr != nil {
			return nil, getErr
		}
		return &AuthResult{User: winner, YandexEmail: profile.Email}, nil
	}
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.TopicIdentityRegistered, events.IdentityRegistered{
		Event:    events.NewEvent(),
		UserID:   user.ID,
		YandexID: profile.ID,
	})

	return &AuthResult{User: user, YandexEmail: profile.Email, Registered: true}, nil
}
