package account

import (
	"time"

	"scanlens-api/internal/common"
)

// User is a registered account. A row is created exactly once, by whichever
// flow (phone or Yandex registration) first observes no matching row.
type User struct {
	ID                 common.UserID `json:"user_id" gorm:"primaryKey;autoIncrement"`
	Phone              string        `json:"phone" gorm:"type:varchar(32);not null;uniqueIndex:idx_users_phone"`
	FirstName          string        `json:"first_name" gorm:"type:varchar(100)"`
	LastName           string        `json:"last_name" gorm:"type:varchar(100)"`
	YandexID           *string       `json:"-" gorm:"type:varchar(64);uniqueIndex:idx_users_yandex_id"`
	YandexEmail        *string       `json:"yandex_email" gorm:"type:varchar(255)"`
	AIResponsesEnabled bool          `json:"ai_responses_enabled" gorm:"not null;default:false"`
	CreatedAt          time.Time     `json:"-"`
	UpdatedAt          time.Time     `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// YandexConnected reports whether a Yandex identity is linked.
func (u User) YandexConnected() bool {
	return u.YandexID != nil
}

// RegisterRequest carries the phone register-or-login input.
type RegisterRequest struct {
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SettingsRequest carries the settings update input. A nil flag means
// "leave the stored value unchanged".
type SettingsRequest struct {
	UserID             common.UserID `json:"user_id"`
	AIResponsesEnabled *bool         `json:"ai_responses_enabled"`
}

// AuthResult is the outcome of a register-or-login call.
type AuthResult struct {
	User       *User
	Registered bool
}
