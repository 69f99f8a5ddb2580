package scan

import (
	"math"
	"time"

	"scanlens-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormRepository creates a GORM-backed scan repository.
func NewGormRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{
		db:     db,
		logger: logger,
	}
}

func (r *gormRepository) Create(record *Record) error {
	record.CreatedAt = time.Now()

	if err := r.db.Create(record).Error; err != nil {
		return common.WrapRepositoryError(err, "create scan record")
	}

	r.logger.Info("Scan record created",
		zap.Int64("scan_id", int64(record.ID)),
		zap.Int64("user_id", int64(record.UserID)))
	return nil
}

func (r *gormRepository) ListByUser(userID common.UserID, limit int) ([]Record, error) {
	var records []Record
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, common.WrapRepositoryError(err, "list scan records")
	}
	return records, nil
}

func (r *gormRepository) StatsByUser(userID common.UserID) (*Stats, error) {
	var row struct {
		Total int64
		Avg   *float64
	}
	err := r.db.Model(&Record{}).
		Select("COUNT(*) AS total, AVG(confidence) AS avg").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, common.WrapRepositoryError(err, "aggregate scan stats")
	}

	stats := &Stats{TotalScans: row.Total}
	if row.Avg != nil {
		stats.AverageConfidence = int(math.Round(*row.Avg))
	}
	return stats, nil
}
