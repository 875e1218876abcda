package notifier

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/nats-io/nats.go"

	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
)

const DefaultNATSSubject = "baseball.notifications"

// natsConn is the subset of *nats.Conn the notifier needs.
type natsConn interface {
	PublishMsg(m *nats.Msg) error
	IsConnected() bool
	Close()
}

type NATSConfig struct {
	URL     string
	Subject string
	Name    string
	Timeout time.Duration
	Logger  *logging.Logger
}

// NATSNotifier publishes every notification as a JSON message on one subject.
// The notification key travels in the Nats-Msg-Id header so JetStream
// consumers can deduplicate.
type NATSNotifier struct {
	conn    natsConn
	subject string
	logger  *logging.Logger
}

func NewNATSNotifier(cfg NATSConfig) (*NATSNotifier, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = nats.DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger := logging.OrDefault(cfg.Logger).Named("notifier.nats")

	conn, err := nats.Connect(url,
		nats.Name(firstNonEmpty(cfg.Name, "college-baseball-live")),
		nats.Timeout(timeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, crerr.Wrapf(err, "connect nats url=%s", url)
	}
	return newNATSNotifier(conn, cfg.Subject, logger), nil
}

func newNATSNotifier(conn natsConn, subject string, logger *logging.Logger) *NATSNotifier {
	return &NATSNotifier{
		conn:    conn,
		subject: firstNonEmpty(subject, DefaultNATSSubject),
		logger:  logging.OrDefault(logger),
	}
}

func (n *NATSNotifier) Name() string { return "nats" }

func (n *NATSNotifier) CanNotify() bool {
	return n.conn != nil && n.conn.IsConnected()
}

func (n *NATSNotifier) Send(ctx context.Context, item notification.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := sonic.Marshal(item)
	if err != nil {
		return crerr.Wrap(err, "marshal nats notification")
	}
	msg := nats.NewMsg(n.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, item.Key)
	if err := n.conn.PublishMsg(msg); err != nil {
		return crerr.Wrapf(err, "publish nats subject=%s", n.subject)
	}
	n.logger.DebugContext(ctx, "nats notification published", "subject", n.subject, "key", item.Key)
	return nil
}

func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
