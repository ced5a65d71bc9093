package service

import (
	"io"
	"log/slog"

	"github.com/neha18-dp/freshbasket-aws-project/internal/notify"
)

func testNotifier() *notify.Notifier {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notify.NewNotifier(&notify.LogPublisher{Logger: logger}, "FreshBasket", logger)
}
