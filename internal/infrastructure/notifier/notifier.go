package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
	"github.com/Miguelito2774/jala-match-sub001/pkg/random"
)

const (
	DefaultQueueSize = 1000
	maxAttempts      = 3
	maxJitter        = time.Second
)

type Sender interface {
	Send(ctx context.Context, n entities.Notification) error
}

type Recorder interface {
	ObserveNotification(kind string, ok bool)
}

// Notifier delivers notifications in the background through a single worker.
type Notifier struct {
	queue    chan entities.Notification
	sender   Sender
	recorder Recorder
	rand     *random.Safe
	backoff  func(attempt int) time.Duration
	logger   logger.Logger
}

func New(sender Sender, size int, log logger.Logger) *Notifier {
	if size <= 0 {
		size = DefaultQueueSize
	}
	n := &Notifier{
		queue:  make(chan entities.Notification, size),
		sender: sender,
		rand:   random.New(),
		logger: log,
	}
	n.backoff = n.exponentialBackoff
	return n
}

func (n *Notifier) WithRecorder(r Recorder) *Notifier {
	n.recorder = r
	return n
}

// Enqueue never blocks; a full queue drops the notification.
func (n *Notifier) Enqueue(note entities.Notification) bool {
	select {
	case n.queue <- note:
		return true
	default:
		n.logger.Error("notification queue full, dropping", "type", note.Type, "profile_id", note.EmployeeProfileID)
		return false
	}
}

// Run processes the queue until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	n.logger.Info("notifier started", "queue_size", cap(n.queue))
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notifier stopped", "pending", len(n.queue))
			return
		case note := <-n.queue:
			n.deliver(ctx, note)
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, note entities.Notification) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := n.sender.Send(ctx, note)
		if err == nil {
			n.observe(note, true)
			return
		}
		if errors.Is(err, entities.ErrUserNotFound) || errors.Is(err, entities.ErrProfileNotFound) {
			n.logger.Error("notification recipient missing", "type", note.Type, "profile_id", note.EmployeeProfileID)
			n.observe(note, false)
			return
		}
		if attempt == maxAttempts {
			n.logger.Error("notification failed", "type", note.Type, "profile_id", note.EmployeeProfileID, "attempts", attempt, "error", err)
			n.observe(note, false)
			return
		}
		wait := n.backoff(attempt)
		n.logger.Debug("retrying notification", "type", note.Type, "attempt", attempt, "wait", wait.String(), "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (n *Notifier) observe(note entities.Notification, ok bool) {
	if n.recorder != nil {
		n.recorder.ObserveNotification(string(note.Type), ok)
	}
}

func (n *Notifier) exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt)*time.Second + n.rand.Jitter(maxJitter)
}
