package telemetry

import (
	"fmt"

	"go.uber.org/zap"

	"scmkit/internal/domain"
)

// ZapListener adapts a zap logger into the progress sink observers hand to
// navigators.
type ZapListener struct {
	logger *zap.Logger
}

func NewZapListener(logger *zap.Logger) *ZapListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapListener{logger: logger.Named("progress")}
}

func (l *ZapListener) Logf(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

var _ domain.ProgressListener = (*ZapListener)(nil)
