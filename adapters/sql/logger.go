package sql

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// SQLLogger logs journal statements with their timing
type SQLLogger struct {
	enabled bool
	mu      sync.RWMutex
}

// NewSQLLogger creates a new SQL logger
func NewSQLLogger(enabled bool) *SQLLogger {
	return &SQLLogger{
		enabled: enabled,
	}
}

// IsEnabled returns whether SQL logging is enabled
func (l *SQLLogger) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// SetEnabled enables or disables SQL logging
func (l *SQLLogger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// LogQuery logs a SELECT with the number of rows it returned
func (l *SQLLogger) LogQuery(query string, args []any, duration time.Duration, rowCount int) {
	l.write(duration, fmt.Sprintf("[rows:%d] ", rowCount), query, args, "")
}

// LogExec logs a statement with the number of rows it affected, when known
func (l *SQLLogger) LogExec(query string, args []any, duration time.Duration, result sql.Result) {
	rows := ""
	if result != nil {
		if affected, err := result.RowsAffected(); err == nil {
			rows = fmt.Sprintf("[rows:%d] ", affected)
		}
	}
	l.write(duration, rows, query, args, "")
}

// LogError logs a statement that failed
func (l *SQLLogger) LogError(query string, args []any, duration time.Duration, err error) {
	l.write(duration, "[ERROR] ", query, args, fmt.Sprintf(" - %v", err))
}

func (l *SQLLogger) write(duration time.Duration, tag, query string, args []any, suffix string) {
	if !l.IsEnabled() {
		return
	}
	log.Print(formatLine(duration, tag, query, args, suffix))
}

// formatLine renders one log line: [SQL] [1.23ms] [rows:1] QUERY [Args: [...]]
func formatLine(duration time.Duration, tag, query string, args []any, suffix string) string {
	line := fmt.Sprintf("[SQL] [%.2fms] %s%s", float64(duration.Nanoseconds())/1e6, tag, formatQuery(query))
	if formatted := formatArgs(args); formatted != "" {
		line += " " + formatted
	}
	return line + suffix
}

// formatQuery collapses whitespace so multi-line statements fit on one line
func formatQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// formatArgs formats the query arguments for logging
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			formatted = append(formatted, fmt.Sprintf(`"%s"`, v))
		case time.Time:
			formatted = append(formatted, v.Format(time.RFC3339))
		case nil:
			formatted = append(formatted, "NULL")
		default:
			formatted = append(formatted, fmt.Sprintf("%v", v))
		}
	}

	return fmt.Sprintf("[Args: [%s]]", strings.Join(formatted, ", "))
}
