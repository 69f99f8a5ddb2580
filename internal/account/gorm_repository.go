package account

import (
	"errors"
	"fmt"
	"time"

	"scanlens-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint (phone or yandex_id). Callers treat it as "already exists,
// fetch and return" per the registration contract.
var ErrDuplicate = errors.New("user already exists")

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormRepository creates a GORM-backed user repository.
func NewGormRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{
		db:     db,
		logger: logger,
	}
}

func (r *gormRepository) Create(user *User) error {
	r.logger.Debug("Creating user", zap.String("phone", user.Phone))

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return common.WrapRepositoryError(err, "create user")
	}

	r.logger.Info("User created", zap.Int64("user_id", int64(user.ID)))
	return nil
}

func (r *gormRepository) GetByID(id common.UserID) (*User, error) {
	var user User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "User", ID: fmt.Sprintf("%d", id)}
		}
		return nil, common.WrapRepositoryError(err, "get user by ID")
	}
	return &user, nil
}

func (r *gormRepository) GetByPhone(phone string) (*User, error) {
	var user User
	err := r.db.Where("phone = ?", phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "User", ID: phone}
		}
		return nil, common.WrapRepositoryError(err, "get user by phone")
	}
	return &user, nil
}

func (r *gormRepository) GetByYandexID(yandexID string) (*User, error) {
	var user User
	err := r.db.Where("yandex_id = ?", yandexID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "User", ID: yandexID}
		}
		return nil, common.WrapRepositoryError(err, "get user by yandex ID")
	}
	return &user, nil
}

func (r *gormRepository) UpdateSettings(id common.UserID, aiResponsesEnabled bool) error {
	r.logger.Debug("Updating user settings",
		zap.Int64("user_id", int64(id)),
		zap.Bool("ai_responses_enabled", aiResponsesEnabled))

	err := r.db.Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_responses_enabled": aiResponsesEnabled,
			"updated_at":           time.Now(),
		}).Error
	if err != nil {
		return common.WrapRepositoryError(err, "update settings")
	}
	return nil
}

func (r *gormRepository) LinkYandex(id common.UserID, yandexID, yandexEmail string) (*User, error) {
	r.logger.Debug("Linking Yandex identity", zap.Int64("user_id", int64(id)))

	result := r.db.Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"yandex_id":    yandexID,
			"yandex_email": yandexEmail,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, common.WrapRepositoryError(result.Error, "link yandex identity")
	}
	if result.RowsAffected == 0 {
		return nil, common.NotFoundError{Resource: "User", ID: fmt.Sprintf("%d", id)}
	}

	return r.GetByID(id)
}
