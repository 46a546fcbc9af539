package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/identity/internal/identity/metrics"
)

const (
	KindWelcome       = "welcome"
	KindPasswordReset = "password_reset"
)

const sendTimeout = 30 * time.Second

type job struct {
	id    string
	kind  string
	email string
	name  string
	link  string
}

// Config configures a Dispatcher.
type Config struct {
	Mailer   Mailer
	Renderer *Renderer
	Logger   *slog.Logger
	Metrics  *metrics.Recorder

	// Workers is the number of concurrent senders, default 2.
	Workers int
	// QueueSize bounds pending notifications, default 100. When the queue is
	// full new notifications are dropped.
	QueueSize int
	// ResetTTL is quoted in the reset mail.
	ResetTTL time.Duration
}

// Dispatcher queues notifications and delivers them from a pool of
// background workers. Notify calls never block on delivery.
type Dispatcher struct {
	cfg   Config
	queue chan job
	wg    sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

func NewDispatcher(cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Mailer == nil {
		cfg.Mailer = LogMailer{Logger: cfg.Logger}
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 24 * time.Hour
	}
	if cfg.Renderer == nil {
		r, err := NewRenderer("", "")
		if err != nil {
			panic(err) // embedded templates failed to compile
		}
		cfg.Renderer = r
	}
	return &Dispatcher{cfg: cfg, queue: make(chan job, cfg.QueueSize)}
}

// Start launches the workers. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	d.cfg.Logger.Info("notification dispatcher started", "workers", d.cfg.Workers, "queue", d.cfg.QueueSize)
}

// Stop stops accepting notifications and waits for the queue to drain or ctx
// to expire, whichever is first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cfg.Logger.Info("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cfg.Logger.Warn("notification dispatcher stopped with pending mail", "pending", len(d.queue))
		return ctx.Err()
	}
}

func (d *Dispatcher) NotifyWelcome(email, name string) {
	d.enqueue(job{kind: KindWelcome, email: email, name: name})
}

func (d *Dispatcher) NotifyPasswordReset(email, name, link string) {
	d.enqueue(job{kind: KindPasswordReset, email: email, name: name, link: link})
}

func (d *Dispatcher) enqueue(j job) {
	j.id = uuid.NewString()

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.cfg.Logger.Warn("notification dropped, dispatcher stopped", "kind", j.kind, "job_id", j.id)
		d.cfg.Metrics.Notification(j.kind, "dropped")
		return
	}

	select {
	case d.queue <- j:
		d.cfg.Metrics.QueueDepth(len(d.queue))
	default:
		d.cfg.Logger.Warn("notification dropped, queue full", "kind", j.kind, "job_id", j.id)
		d.cfg.Metrics.Notification(j.kind, "dropped")
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for j := range d.queue {
		d.cfg.Metrics.QueueDepth(len(d.queue))
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	log := d.cfg.Logger.With(slog.String("job_id", j.id), slog.String("kind", j.kind))

	var (
		msg Message
		err error
	)
	switch j.kind {
	case KindWelcome:
		msg, err = d.cfg.Renderer.Welcome(j.email, j.name)
	case KindPasswordReset:
		msg, err = d.cfg.Renderer.PasswordReset(j.email, j.name, j.link, d.cfg.ResetTTL)
	}
	if err != nil {
		log.Error("failed to render notification", slog.Any("error", err))
		d.cfg.Metrics.Notification(j.kind, metrics.OutcomeFailure)
		return
	}
	msg.ID = j.id

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := d.cfg.Mailer.Send(ctx, msg); err != nil {
		log.Error("failed to send notification", slog.Any("error", err))
		d.cfg.Metrics.Notification(j.kind, metrics.OutcomeFailure)
		return
	}
	log.Debug("notification sent")
	d.cfg.Metrics.Notification(j.kind, metrics.OutcomeSuccess)
}
