package alerts

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	client "github.com/mamadbah2/tilestock/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// MessageFormatter renders a dashboard into alert text. ok is false when
// there is nothing to report.
type MessageFormatter interface {
	LowStockMessage(data models.DashboardData) (text string, ok bool)
}

// Notifier pushes low-stock alerts to a single WhatsApp recipient.
type Notifier struct {
	client    client.Client
	formatter MessageFormatter
	recipient string
	logger    *zap.Logger
}

// NewNotifier wires a new notifier instance.
func NewNotifier(c client.Client, formatter MessageFormatter, recipient string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		client:    c,
		formatter: formatter,
		recipient: recipient,
		logger:    logger,
	}
}

// NotifyLowStock sends the low-stock summary of data. It reports whether a
// message was sent; an empty low-stock list sends nothing.
func (n *Notifier) NotifyLowStock(ctx context.Context, data models.DashboardData) (bool, error) {
	text, ok := n.formatter.LowStockMessage(data)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := n.client.SendTextMessage(ctx, client.SendTextMessageRequest{
		To:   n.recipient,
		Body: text,
	})
	if err != nil {
		return false, fmt.Errorf("send low stock alert: %w", err)
	}

	n.logger.Info("low stock alert sent",
		zap.String("to", n.recipient),
		zap.String("message_id", resp.MessageID()),
		zap.Int("items", len(data.LowStock)))
	return true, nil
}
