package bootstrap

import (
	"os"

	"tripscan/adapter/in/worker"
	"tripscan/config"

	"github.com/rs/zerolog"
)

// Worker owns the background poll scheduler.
type Worker struct {
	scheduler *worker.PollScheduler
	zlog      zerolog.Logger
}

func NewWorker(cfg *config.Config, deps *Dependencies) *Worker {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Str("component", "worker").Logger()

	w := &Worker{zlog: zlog}
	if cfg.SchedulerEnabled {
		w.scheduler = worker.NewPollScheduler(deps.PollService, cfg.PollInterval)
	} else {
		zlog.Warn().Msg("Poll scheduler disabled, polls run only via internal endpoints")
	}
	return w
}

func (w *Worker) Start() {
	if w.scheduler != nil {
		w.scheduler.Start()
		w.zlog.Info().Msg("Started poll scheduler")
	}
}

func (w *Worker) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}
