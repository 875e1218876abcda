package notifier

import (
	"context"

	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

// LogNotifier writes notifications to the structured log. It is always able to
// deliver, which makes it the fallback backend when nothing else is enabled.
type LogNotifier struct {
	logger *logging.Logger
}

func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logging.OrDefault(logger).Named("notifier.log")}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) CanNotify() bool { return true }

func (n *LogNotifier) Send(ctx context.Context, item notification.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"key", item.Key,
		"kind", item.Kind,
		"game_id", item.GameID,
		"title", item.Title,
		"body", item.Body,
	)
	return nil
}
