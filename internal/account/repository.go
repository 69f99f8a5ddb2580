package account

import (
	"scanlens-api/internal/common"
)

// Repository persists users. Lookups return common.NotFoundError when no row
// matches; Create returns ErrDuplicate when a uniqueness constraint fires.
type Repository interface {
	Create(user *User) error
	GetByID(id common.UserID) (*User, error)
	GetByPhone(phone string) (*User, error)
	GetByYandexID(yandexID string) (*User, error)
	UpdateSettings(id common.UserID, aiResponsesEnabled bool) error
	LinkYandex(id common.UserID, yandexID, yandexEmail string) (*User, error)
}
