package expiry

import (
	"context"
	"time"
)

// Sweeper один проход по просроченным заявкам
type Sweeper interface {
	Execute(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker периодически переводит в expired заявки, не рассмотренные за 24 часа.
// Ошибка прохода не останавливает воркер: следующий тик повторит попытку.
type Worker struct {
	sweeper  Sweeper
	interval time.Duration
	logger   Logger
}

func NewWorker(sweeper Sweeper, interval time.Duration, logger Logger) *Worker {
	return &Worker{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// Run выполняет проход сразу и затем раз в interval, пока ctx не отменён
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("ExpiryWorker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for ctx.Err() == nil {
		w.sweep(ctx)

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	w.logger.Info("ExpiryWorker: stopped")
}

func (w *Worker) sweep(ctx context.Context) {
	expired, err := w.sweeper.Execute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("ExpiryWorker: sweep failed after %d expirations: %v", expired, err)
		return
	}
	if expired > 0 {
		w.logger.Info("ExpiryWorker: expired %d reservations", expired)
	}
}
