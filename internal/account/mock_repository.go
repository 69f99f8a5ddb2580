package account

import (
	"fmt"
	"sync"
	"time"

	"scanlens-api/internal/common"
)

// MockRepository is an in-memory Repository for tests. It enforces the same
// uniqueness rules as the database so race-fallback paths can be exercised.
type MockRepository struct {
	mu     sync.Mutex
	users  map[common.UserID]*User
	nextID common.UserID

	CreateErr error
	GetErr    error
	UpdateErr error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users: make(map[common.UserID]*User),
	}
}

func (m *MockRepository) Create(user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, existing := range m.users {
		if existing.Phone == user.Phone {
			return ErrDuplicate
		}
		if user.YandexID != nil && existing.YandexID != nil && *existing.YandexID == *user.YandexID {
			return ErrDuplicate
		}
	}

	m.nextID++
	user.ID = m.nextID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockRepository) GetByID(id common.UserID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, common.NotFoundError{Resource: "User", ID: fmt.Sprintf("%d", id)}
}

func (m *MockRepository) GetByPhone(phone string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, user := range m.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.NotFoundError{Resource: "User", ID: phone}
}

func (m *MockRepository) GetByYandexID(yandexID string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, user := range m.users {
		if user.YandexID != nil && *user.YandexID == yandexID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.NotFoundError{Resource: "User", ID: yandexID}
}

func (m *MockRepository) UpdateSettings(id common.UserID, aiResponsesEnabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if user, ok := m.users[id]; ok {
		user.AIResponsesEnabled = aiResponsesEnabled
		user.UpdatedAt = time.Now()
	}
	return nil
}

func (m *MockRepository) LinkYandex(id common.UserID, yandexID, yandexEmail string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, common.NotFoundError{Resource: "User", ID: fmt.Sprintf("%d", id)}
	}
	for otherID, other := range m.users {
		if otherID != id && other.YandexID != nil && *other.YandexID == yandexID {
			return nil, ErrDuplicate
		}
	}

	user.YandexID = &yandexID
	user.YandexEmail = &yandexEmail
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

// Seed inserts a user directly, bypassing uniqueness checks.
func (m *MockRepository) Seed(user User) *User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	m.users[user.ID] = &user
	copied := user
	return &copied
}

// Count returns the number of stored users.
func (m *MockRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
