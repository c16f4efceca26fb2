package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/pkg/config"
)

// Publisher sends task commands over NATS as an alternative to the HTTP task runner
type Publisher struct {
	nc     *nats.Conn
	prefix string
	logger *zap.Logger
}

// NewPublisher connects to NATS
func NewPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("customer-pulse"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if logger != nil && err != nil {
				logger.Warn("⚠️ NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			if logger != nil {
				logger.Info("🔄 NATS reconnected", zap.String("url", c.ConnectedUrl()))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{nc: nc, prefix: cfg.SubjectPrefix, logger: logger}, nil
}

// Dispatch publishes the command on <prefix>.<task_id> and waits for the server to accept it.
// The idempotency key travels as Nats-Msg-Id so JetStream streams can deduplicate.
func (p *Publisher) Dispatch(ctx context.Context, cmd entities.TaskCommand) (string, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return "", fmt.Errorf("encode task command: %w", err)
	}

	msg := nats.NewMsg(subjectFor(p.prefix, cmd.TaskID))
	msg.Data = data
	if cmd.IdempotencyKey != "" {
		msg.Header.Set(nats.MsgIdHdr, cmd.IdempotencyKey)
	}

	if err := p.nc.PublishMsg(msg); err != nil {
		return "", fmt.Errorf("publish task %s: %w", cmd.TaskID, err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return "", fmt.Errorf("flush task %s: %w", cmd.TaskID, err)
	}

	if p.logger != nil {
		p.logger.Info("✅ Task published",
			zap.String("task_id", cmd.TaskID),
			zap.String("subject", msg.Subject),
		)
	}
	return cmd.IdempotencyKey, nil
}

// Close drains the connection
func (p *Publisher) Close() error {
	return p.nc.Drain()
}

func subjectFor(prefix, taskID string) string {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return taskID
	}
	return prefix + "." + taskID
}
