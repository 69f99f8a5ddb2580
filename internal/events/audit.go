package events

import (
	"go.uber.org/zap"
)

// RegisterAuditSubscribers attaches logging subscribers for every audit
// topic. Wired once from main.
func RegisterAuditSubscribers(bus EventBus, logger *zap.Logger) error {
	subscriptions := []struct {
		topic   string
		handler interface{}
	}{
		{TopicUserRegistered, func(e UserRegistered) {
			logger.Info("User registered",
				zap.Int64("user_id", int64(e.UserID)),
				zap.String("correlation_id", e.CorrelationID))
		}},
		{TopicSettingsUpdated, func(e SettingsUpdated) {
			logger.Info("User settings updated",
				zap.Int64("user_id", int64(e.UserID)),
				zap.Bool("ai_responses_enabled", e.AIResponsesEnabled),
				zap.String("correlation_id", e.CorrelationID))
		}},
		{TopicScanCompleted, func(e ScanCompleted) {
			logger.Info("Scan completed",
				zap.Int64("user_id", int64(e.UserID)),
				zap.Int64("scan_id", int64(e.ScanID)),
				zap.String("category", e.Category),
				zap.Int("confidence", e.Confidence),
				zap.String("correlation_id", e.CorrelationID))
		}},
		{TopicIdentityLinked, func(e IdentityLinked) {
			logger.Info("Yandex ID linked",
				zap.Int64("user_id", int64(e.UserID)),
				zap.String("correlation_id", e.CorrelationID))
		}},
		{TopicIdentityRegistered, func(e IdentityRegistered) {
			logger.Info("User registered via Yandex",
				zap.Int64("user_id", int64(e.UserID)),
				zap.String("correlation_id", e.CorrelationID))
		}},
	}

	for _, s := range subscriptions {
		if err := bus.Subscribe(s.topic, s.handler); err != nil {
			return err
		}
	}
	return nil
}
