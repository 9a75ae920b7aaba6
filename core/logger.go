package core

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// ActionLogger provides debug logging of built actions
type ActionLogger struct {
	enabled bool
	mu      sync.RWMutex
}

// NewActionLogger creates a new action logger
func NewActionLogger(enabled bool) *ActionLogger {
	return &ActionLogger{
		enabled: enabled,
	}
}

// IsEnabled returns whether action logging is enabled.
// A nil logger is never enabled.
func (l *ActionLogger) IsEnabled() bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// SetEnabled enables or disables action logging
func (l *ActionLogger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// LogAction logs an action with its endpoint, method and payload
func (l *ActionLogger) LogAction(action Action) {
	if !l.IsEnabled() {
		return
	}
	log.Print(l.formatAction(action))
}

// formatAction renders an action as a single log line
func (l *ActionLogger) formatAction(action Action) string {
	var b strings.Builder

	if action.Meta.IsAPI() {
		fmt.Fprintf(&b, "[API] [%s] %s %s", action.Type, action.Meta.Method(), action.Meta.Endpoint())
	} else {
		fmt.Fprintf(&b, "[ACTION] [%s]", action.Type)
	}

	if action.Error {
		b.WriteString(" [ERROR]")
	}

	fmt.Fprintf(&b, " [Payload: %s]", l.formatValue(action.Payload))

	return b.String()
}

// formatValue formats a payload for logging
func (l *ActionLogger) formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf(`"%s"`, v)
	case error:
		return v.Error()
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+l.formatValue(v[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
