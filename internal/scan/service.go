package scan

import (
	"context"
	"strings"

	"scanlens-api/internal/account"
	"scanlens-api/internal/common"
	"scanlens-api/internal/events"
	"scanlens-api/internal/vision"

	"go.uber.org/zap"
)

// DefaultHistoryLimit caps a history page when the caller gives no limit.
const DefaultHistoryLimit = 20

// Service implements scan submission and history listing.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
	History(userID common.UserID, limit int) (*HistoryResult, error)
}

type scanService struct {
	eventBus   events.EventBus
	logger     *zap.Logger
	repository Repository
	users      account.Repository
	classifier vision.Provider
}

func NewService(eventBus events.EventBus, logger *zap.Logger, repository Repository, users account.Repository, classifier vision.Provider) Service {
	return &scanService{
		eventBus:   eventBus,
		logger:     logger,
		repository: repository,
		users:      users,
		classifier: classifier,
	}
}

// Submit classifies the image and appends a scan record. The description is
// requested from the classifier only when the user opted in, and withheld
// from the response in any case where the flag is off.
func (s *scanService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if req.UserID == 0 {
		return nil, common.ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	if strings.TrimSpace(req.Image) == "" {
		return nil, common.ValidationError{Field: "image", Message: "image is required"}
	}

	user, err := s.users.GetByID(req.UserID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.classifier.Classify(ctx, req.Image, user.AIResponsesEnabled)
	if err != nil {
		s.logger.Error("Image classification failed",
			zap.Int64("user_id", int64(req.UserID)),
			zap.Error(err))
		return nil, err
	}

	record := &Record{
		UserID:     req.UserID,
		Title:      DefaultTitle,
		Category:   DefaultCategory,
		Confidence: DefaultConfidence,
		AIResponse: analysis.Description,
	}
	if analysis.Title != nil {
		record.Title = *analysis.Title
	}
	if analysis.Category != nil {
		record.Category = *analysis.Category
	}
	if analysis.Confidence != nil {
		record.Confidence = *analysis.Confidence
	}

	if err := s.repository.Create(record); err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.TopicScanCompleted, events.ScanCompleted{
		Event:      events.NewEvent(),
		UserID:     record.UserID,
		ScanID:     record.ID,
		Category:   record.Category,
		Confidence: record.Confidence,
	})

	result := &SubmitResult{
		ScanID:     record.ID,
		Title:      record.Title,
		Category:   record.Category,
		Confidence: record.Confidence,
		CreatedAt:  record.CreatedAt,
	}
	// Never leak a description to a user who disabled AI responses, even
	// when the classifier volunteered one.
	if user.AIResponsesEnabled {
		result.Description = record.AIResponse
	}
	return result, nil
}

// History returns the newest records up to limit plus aggregates over the
// user's entire history.
func (s *scanService) History(userID common.UserID, limit int) (*HistoryResult, error) {
	if userID == 0 {
		return nil, common.ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := s.repository.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}

	stats, err := s.repository.StatsByUser(userID)
	if err != nil {
		return nil, err
	}

	return &HistoryResult{
		Scans:             records,
		TotalScans:        stats.TotalScans,
		AverageConfidence: stats.AverageConfidence,
	}, nil
}
