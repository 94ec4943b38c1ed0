package notifications

import (
	"context"

	"artisan_escrow/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the process log. Used in local runs.
type LogNotifier struct {
	logger *zap.Logger
}

var _ interfaces.INotificationSink = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, userID, template string, payload map[string]any) error {
	n.logger.Info("[notification] sent",
		zap.String("user_id", userID),
		zap.String("template", template),
		zap.Any("payload", payload))
	return nil
}
