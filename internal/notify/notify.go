package notify

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Notifier delivers a one-shot user-facing message. Nothing is returned to the caller.
type Notifier interface {
	NotifyError(ctx context.Context, message string)
}

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyError(_ context.Context, message string) {
	n.log.WithField("notification", "error").Warn(message)
}

// Recorder keeps every message it receives, in order.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) NotifyError(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
