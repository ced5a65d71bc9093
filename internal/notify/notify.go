package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// Publisher is the external notification collaborator: one-way publish of
// human-readable text to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic, subject, body string) error
}

// LogPublisher writes notifications to the log instead of an external bus.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p *LogPublisher) Publish(_ context.Context, topic, subject, body string) error {
	p.Logger.Info("notification published", "topic", topic, "subject", subject, "body", body)
	return nil
}

// Notifier wraps a Publisher with the FreshBasket topic and event wording.
// Every method is fire-and-forget: publish errors are logged and swallowed,
// they never affect the triggering operation.
type Notifier struct {
	publisher Publisher
	topic     string
	logger    *slog.Logger
}

func NewNotifier(publisher Publisher, topic string, logger *slog.Logger) *Notifier {
	return &Notifier{publisher: publisher, topic: topic, logger: logger}
}

func (n *Notifier) UserRegistered(ctx context.Context, username string) {
	n.publish(ctx, "FreshBasket Signup", fmt.Sprintf("New user registered: %s", username))
}

func (n *Notifier) ProductAdded(ctx context.Context, seller, productName string) {
	n.publish(ctx, "FreshBasket New Product", fmt.Sprintf("New product added by seller %s: %s", seller, productName))
}

func (n *Notifier) OrderPlaced(ctx context.Context, username, orderID string) {
	n.publish(ctx, "FreshBasket Order Notification", fmt.Sprintf("New order placed by %s, Order ID: %s", username, orderID))
}

func (n *Notifier) publish(ctx context.Context, subject, body string) {
	if err := n.publisher.Publish(ctx, n.topic, subject, body); err != nil {
		n.logger.Warn("notification failed", "subject", subject, "error", err)
	}
}
