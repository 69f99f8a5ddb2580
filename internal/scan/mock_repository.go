package scan

import (
	"math"
	"sort"
	"sync"
	"time"

	"scanlens-api/internal/common"
)

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu      sync.Mutex
	records []Record
	nextID  common.ScanID

	CreateErr error
	ListErr   error
	StatsErr  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) Create(record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.nextID++
	record.ID = m.nextID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *MockRepository) ListByUser(userID common.UserID, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	var matched []Record
	for _, record := range m.records {
		if record.UserID == userID {
			matched = append(matched, record)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockRepository) StatsByUser(userID common.UserID) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StatsErr != nil {
		return nil, m.StatsErr
	}

	var total int64
	var sum int
	for _, record := range m.records {
		if record.UserID == userID {
			total++
			sum += record.Confidence
		}
	}

	stats := &Stats{TotalScans: total}
	if total > 0 {
		stats.AverageConfidence = int(math.Round(float64(sum) / float64(total)))
	}
	return stats, nil
}

// Seed inserts a record directly.
func (m *MockRepository) Seed(record Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record.ID == 0 {
		m.nextID++
		record.ID = m.nextID
	} else if record.ID > m.nextID {
		m.nextID = record.ID
	}
	m.records = append(m.records, record)
}

// Count returns the number of stored records.
func (m *MockRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
