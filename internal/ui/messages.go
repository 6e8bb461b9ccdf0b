package ui

import (
	"sync"
	"time"
)

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Error     bool
	Timestamp time.Time
}

// MessageLogger keeps the last N status messages for the :messages view
type MessageLogger struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{maxSize: maxSize}
}

// Add records a message; empty text is ignored
func (ml *MessageLogger) Add(text string, isError bool) {
	if text == "" {
		return
	}
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, Error: isError, Timestamp: time.Now()})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Latest returns the newest message
func (ml *MessageLogger) Latest() (Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	if len(ml.messages) == 0 {
		return Message{}, false
	}
	return ml.messages[len(ml.messages)-1], true
}

// Lines formats the messages newest first
func (ml *MessageLogger) Lines() []string {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	lines := make([]string, 0, len(ml.messages))
	for i := len(ml.messages) - 1; i >= 0; i-- {
		m := ml.messages[i]
		prefix := "  "
		if m.Error {
			prefix = "! "
		}
		lines = append(lines, m.Timestamp.Format(time.TimeOnly)+" "+prefix+m.Text)
	}
	return lines
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
