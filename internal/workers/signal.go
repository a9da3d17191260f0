package workers

import (
	"context"
	"os"
	"os/signal"

	"github.com/MKhiriev/go-greeter/internal/logger"
)

// SignalWorker returns once one of its signals arrives, which stops the
// rest of the group.
type SignalWorker struct {
	signals []os.Signal
	logger  *logger.Logger
}

func NewSignalWorker(logger *logger.Logger, signals ...os.Signal) *SignalWorker {
	return &SignalWorker{signals: signals, logger: logger}
}

func (w *SignalWorker) Run(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, w.signals...)
	defer stop()

	<-sigCtx.Done()
	if ctx.Err() == nil {
		w.logger.Info().Msg("stop signal received, shutting down")
	}
	return nil
}
