package workers

import (
	"context"

	"github.com/xlevchenko/TwinTalk/internal/logger"
)

type Workers struct {
	workers []Worker
	names   []string

	logger *logger.Logger
}

// NewWorkers returns an empty aggregate.
func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Register appends w under name. Workers start in registration order.
func (w *Workers) Register(name string, worker Worker) {
	w.workers = append(w.workers, worker)
	w.names = append(w.names, name)
}

func (w *Workers) Start(ctx context.Context) {
	for i, worker := range w.workers {
		worker.Start(ctx)
		w.log().Debug().Str("func", "Workers.Start").Str("worker", w.names[i]).Msg("worker started")
	}
}

// Stop stops the workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
		w.log().Debug().Str("func", "Workers.Stop").Str("worker", w.names[i]).Msg("worker stopped")
	}
}

func (w *Workers) log() *logger.Logger {
	if w.logger == nil {
		return logger.Nop()
	}
	return w.logger
}
