package events

import (
	"time"

	"github.com/google/uuid"

	"scanlens-api/internal/common"
)

// Topic names for audit events.
const (
	TopicUserRegistered     = "user.registered"
	TopicSettingsUpdated    = "user.settings_updated"
	TopicScanCompleted      = "scan.completed"
	TopicIdentityLinked     = "identity.linked"
	TopicIdentityRegistered = "identity.registered"
)

// Event is the base payload with correlation fields.
type Event struct {
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// UserRegistered is published when a phone registration creates a user row.
type UserRegistered struct {
	Event
	UserID common.UserID `json:"user_id"`
	Phone  string        `json:"phone"`
}

// SettingsUpdated is published when a settings mutation is applied.
type SettingsUpdated struct {
	Event
	UserID             common.UserID `json:"user_id"`
	AIResponsesEnabled bool          `json:"ai_responses_enabled"`
}

// ScanCompleted is published after a scan record is persisted.
type ScanCompleted struct {
	Event
	UserID     common.UserID `json:"user_id"`
	ScanID     common.ScanID `json:"scan_id"`
	Category   string        `json:"category"`
	Confidence int           `json:"confidence"`
}

// IdentityLinked is published when a Yandex ID is attached to an existing user.
type IdentityLinked struct {
	Event
	UserID   common.UserID `json:"user_id"`
	YandexID string        `json:"yandex_id"`
}

// IdentityRegistered is published when a Yandex login creates a user row.
type IdentityRegistered struct {
	Event
	UserID   common.UserID `json:"user_id"`
	YandexID string        `json:"yandex_id"`
}
