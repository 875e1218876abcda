package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/game"
	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

const notifySendTimeout = 10 * time.Second

// NotificationService turns consecutive scoreboard snapshots into alerts for
// favorite games. Each key is delivered at most once per process.
type NotificationService struct {
	prefs    *PreferenceService
	notifier notification.Notifier
	logger   *logging.Logger

	mu   sync.Mutex
	seen map[string]struct{}

	pending sync.WaitGroup
}

func NewNotificationService(prefs *PreferenceService, notifier notification.Notifier, logger *logging.Logger) *NotificationService {
	return &NotificationService{
		prefs:    prefs,
		notifier: notifier,
		logger:   logging.OrDefault(logger).Named("notifications"),
		seen:     make(map[string]struct{}),
	}
}

// Subscribe attaches the service to scoreboard updates. Delivery runs off the
// poll goroutine so slow backends never hold up polling.
func (s *NotificationService) Subscribe(scoreboard *ScoreboardService) {
	scoreboard.OnUpdate(func(previous, current []game.Game) {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			ctx, cancel := context.WithTimeout(context.Background(), notifySendTimeout)
			defer cancel()
			s.Process(ctx, previous, current)
		}()
	})
}

// Process detects and delivers notifications for one snapshot transition and
// returns the ones that were handed to the notifier.
func (s *NotificationService) Process(ctx context.Context, previous, current []game.Game) []notification.Notification {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.Process")
	defer span.End()

	if s.notifier == nil || s.prefs == nil {
		return nil
	}
	prefs := s.prefs.NotificationPrefs()
	if !prefs.Enabled || !s.notifier.CanNotify() {
		return nil
	}

	detected := notification.Detect(previous, current, s.prefs.Favorites(), prefs)
	fresh := s.claim(detected)
	for _, item := range fresh {
		if err := s.notifier.Send(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "deliver notification failed", "key", item.Key, "error", err)
		}
	}
	return fresh
}

// claim filters out keys already delivered and marks the rest as seen.
func (s *NotificationService) claim(items []notification.Notification) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]notification.Notification, 0, len(items))
	for _, item := range items {
		if _, ok := s.seen[item.Key]; ok {
			continue
		}
		s.seen[item.Key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Wait blocks until deliveries started by Subscribe are done or ctx ends.
func (s *NotificationService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
