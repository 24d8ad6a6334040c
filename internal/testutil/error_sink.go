package testutil

import (
	"context"
	"sync"
)

// Notification is one call recorded by RecordingErrorSink
type Notification struct {
	Err     error
	Details map[string]any
}

// RecordingErrorSink implements interfaces.ErrorSink and keeps every notification
type RecordingErrorSink struct {
	mu            sync.Mutex
	notifications []Notification
}

func NewRecordingErrorSink() *RecordingErrorSink {
	return &RecordingErrorSink{}
}

func (s *RecordingErrorSink) Notify(_ context.Context, err error, details map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, Notification{Err: err, Details: details})
}

// Notifications returns a copy of what has been recorded so far
func (s *RecordingErrorSink) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}
