// Package notify turns the interaction store's notification feed into
// user-visible deliveries: toasts for the current session, plus optional
// email and SMS channels.
package notify

import (
	"sync"

	"uniautomarket/internal/common/logger"
)

// Level classifies a toast for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is one transient message shown to the current session.
type Toast struct {
	Level   Level
	Message string
}

// Toaster receives transient session-scoped messages.
type Toaster interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// LogToaster is the default sink: structured log lines tagged as toasts.
type LogToaster struct {
	log logger.Logger
}

func NewLogToaster(log logger.Logger) *LogToaster {
	return &LogToaster{log: log.WithFields(map[string]interface{}{"channel": "toast"})}
}

func (t *LogToaster) Success(message string) {
	t.log.Info(message, map[string]interface{}{"level": string(LevelSuccess)})
}

func (t *LogToaster) Error(message string) {
	t.log.Error(message, map[string]interface{}{"level": string(LevelError)})
}

func (t *LogToaster) Info(message string) {
	t.log.Info(message, map[string]interface{}{"level": string(LevelInfo)})
}

// RecordingToaster keeps every toast for inspection in tests.
type RecordingToaster struct {
	mu     sync.Mutex
	toasts []Toast
}

func NewRecordingToaster() *RecordingToaster { return &RecordingToaster{} }

func (t *RecordingToaster) Success(message string) { t.record(LevelSuccess, message) }
func (t *RecordingToaster) Error(message string)   { t.record(LevelError, message) }
func (t *RecordingToaster) Info(message string)    { t.record(LevelInfo, message) }

func (t *RecordingToaster) record(level Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, Toast{Level: level, Message: message})
}

// Toasts returns everything recorded so far.
func (t *RecordingToaster) Toasts() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.toasts...)
}
