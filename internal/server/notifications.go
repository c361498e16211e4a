package server

import (
	"sync"

	"github.com/hirewatch/hirewatch/pkg/workflow"
)

const defaultNotificationLimit = 50

// NotificationLog retains the most recent workflow notifications for the
// state endpoint. It satisfies workflow.Notifier, so it plugs straight
// into a Runner.
type NotificationLog struct {
	mu    sync.Mutex
	limit int
	notes []workflow.Notification
}

var _ workflow.Notifier = (*NotificationLog)(nil)

func NewNotificationLog(limit int) *NotificationLog {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return &NotificationLog{limit: limit}
}

func (l *NotificationLog) Notify(n workflow.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notes = append(l.notes, n)
	if len(l.notes) > l.limit {
		l.notes = l.notes[len(l.notes)-l.limit:]
	}
}

// Recent returns the retained notifications, oldest first.
func (l *NotificationLog) Recent() []workflow.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]workflow.Notification{}, l.notes...)
}
