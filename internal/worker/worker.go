package worker

import (
	"context"
	"sync"
	"time"
)

// Job одна итерация фоновой задачи
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc адаптер функции к Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker запускает Job с фиксированным периодом, не более одного прогона одновременно
type Worker struct {
	name     string
	interval time.Duration
	job      Job
	logger   Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New создает воркер. Первый прогон выполняется сразу после Start
func New(name string, interval time.Duration, job Job, logger Logger) *Worker {
	return &Worker{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger,
	}
}

// Start запускает воркер в отдельной горутине. Повторный вызов ничего не делает
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true

	go w.loop(ctx, w.done)

	w.logger.Info("Worker %s: started with interval %v", w.name, w.interval)
}

// Stop останавливает воркер и дожидается завершения текущего прогона
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel, done := w.cancel, w.done
	w.running = false
	w.mu.Unlock()

	cancel()
	<-done

	w.logger.Info("Worker %s: stopped", w.name)
}

func (w *Worker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	if err := w.job.Run(ctx); err != nil {
		w.logger.Error("Worker %s: run failed: %v", w.name, err)
	}
}
