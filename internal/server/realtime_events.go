package server

import (
	"context"
	"log/slog"
	"time"

	"holocron/internal/middleware"
	"holocron/internal/notifications"
	"holocron/internal/service"
)

const publishTimeout = 2 * time.Second

// publishUserEvent sends an event to the user's channel. Failures are logged
// and never reach the client; the favorites change is already committed.
func (s *Server) publishUserEvent(ctx context.Context, userID uint, eventType string, payload map[string]interface{}) {
	if !s.notifier.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.notifier.PublishEvent(ctx, notifications.NewEvent(userID, eventType, payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish event",
			slog.String("event_type", eventType),
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}
}

func favoriteSummary(res *service.FavoriteResult) map[string]interface{} {
	return map[string]interface{}{
		"kind":      string(res.Kind),
		"target_id": res.TargetID,
		"name":      res.TargetName,
	}
}
