package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/preslavrachev/apiaction/core"
)

// Constants for pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TableName is the table the journal records actions into
const TableName = "api_actions"

const schema = `
CREATE TABLE IF NOT EXISTS api_actions (
	id          TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	method      TEXT NOT NULL,
	endpoint    TEXT NOT NULL,
	is_error    BOOLEAN NOT NULL DEFAULT 0,
	body        TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL
)`

// Entry is one recorded action
type Entry struct {
	ID         string      `json:"id" db:"id"`
	Type       string      `json:"type" db:"type"`
	Method     core.Method `json:"method" db:"method"`
	Endpoint   string      `json:"endpoint" db:"endpoint"`
	IsError    bool        `json:"is_error" db:"is_error"`
	Body       string      `json:"body" db:"body"`
	RecordedAt time.Time   `json:"recorded_at"`
}

// Action decodes the recorded action body
func (e Entry) Action() (core.Action, error) {
	var action core.Action
	if err := json.Unmarshal([]byte(e.Body), &action); err != nil {
		return core.Action{}, errors.Wrapf(err, "decode entry %s", e.ID)
	}
	return action, nil
}

// Filter narrows down journal queries; zero values match everything
type Filter struct {
	Type       string
	Method     core.Method
	ErrorsOnly bool
	Limit      int
	Offset     int
}

// Journal records built actions into a SQL database for downstream middleware
type Journal struct {
	db     *sql.DB
	logger *SQLLogger
	now    func() time.Time
}

// New creates a new journal
func New(db *sql.DB) *Journal {
	return NewWithDebug(db, false)
}

// NewWithDebug creates a new journal with debug logging enabled
func NewWithDebug(db *sql.DB, debugEnabled bool) *Journal {
	return &Journal{
		db:     db,
		logger: NewSQLLogger(debugEnabled),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetDebugEnabled enables or disables SQL debug logging
func (j *Journal) SetDebugEnabled(enabled bool) {
	j.logger.SetEnabled(enabled)
}

// Migrate creates the journal table if it does not exist
func (j *Journal) Migrate(ctx context.Context) error {
	if _, err := j.loggedExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "create journal table")
	}
	return nil
}

// Record stores an action and returns the generated entry ID
func (j *Journal) Record(ctx context.Context, action core.Action) (string, error) {
	body, err := json.Marshal(action)
	if err != nil {
		return "", errors.Wrapf(err, "encode action %s", action.Type)
	}

	id := uuid.NewString()
	query := fmt.Sprintf(
		"INSERT INTO %s (id, type, method, endpoint, is_error, body, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		TableName,
	)

	_, err = j.loggedExecContext(ctx, query,
		id,
		action.Type,
		string(action.Meta.Method()),
		action.Meta.Endpoint(),
		action.Error,
		string(body),
		j.now(),
	)
	if err != nil {
		return "", errors.Wrapf(err, "record action %s", action.Type)
	}

	return id, nil
}

// Find returns matching entries, newest first
func (j *Journal) Find(ctx context.Context, filter Filter) ([]Entry, error) {
	where, args := filter.whereClause()

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT * FROM %s%s ORDER BY recorded_at DESC, rowid DESC LIMIT %d OFFSET %d",
		TableName, where, limit, offset)

	start := time.Now()
	rows, err := j.loggedQueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := j.scanRowIntoStruct(rows, &entry); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	j.logger.LogQuery(query, args, time.Since(start), len(entries))

	return entries, nil
}

// Count returns the number of matching entries, ignoring limit and offset
func (j *Journal) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args := filter.whereClause()
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", TableName, where)

	var count int64
	start := time.Now()
	err := j.db.QueryRowContext(ctx, query, args...).Scan(&count)
	duration := time.Since(start)
	if err != nil {
		j.logger.LogError(query, args, duration, err)
		return 0, errors.Wrap(err, "failed to count entries")
	}
	j.logger.LogQuery(query, args, duration, 1)

	return count, nil
}

// whereClause builds the WHERE clause and its arguments
func (f Filter) whereClause() (string, []any) {
	var conditions []string
	var args []any

	if f.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, f.Type)
	}
	if f.Method != "" {
		conditions = append(conditions, "UPPER(method) = ?")
		args = append(args, f.Method.Upper())
	}
	if f.ErrorsOnly {
		conditions = append(conditions, "is_error = 1")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// loggedQueryContext wraps QueryContext with logging
func (j *Journal) loggedQueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		j.logger.LogError(query, args, time.Since(start), err)
		return nil, err
	}

	// Row count is logged by the caller after scanning
	return rows, nil
}

// loggedExecContext wraps ExecContext with logging
func (j *Journal) loggedExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := j.db.ExecContext(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		j.logger.LogError(query, args, duration, err)
		return nil, err
	}

	j.logger.LogExec(query, args, duration, result)
	return result, nil
}

// scanRowIntoStruct scans a sql.Rows into a struct using reflection
func (j *Journal) scanRowIntoStruct(rows *sql.Rows, dest any) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	destValue := reflect.ValueOf(dest).Elem()
	destType := destValue.Type()

	// Map column names to struct fields
	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < destType.NumField(); i++ {
		field := destType.Field(i)

		// Get column name from db tag or convert field name to snake_case
		columnName := field.Tag.Get("db")
		if columnName == "" || columnName == "-" {
			columnName = strcase.ToSnake(field.Name)
		}

		fieldMap[columnName] = destValue.Field(i)
	}

	valuePtrs := make([]any, len(columns))
	for i, column := range columns {
		if fieldValue, exists := fieldMap[column]; exists && fieldValue.CanSet() {
			valuePtrs[i] = fieldValue.Addr().Interface()
		} else {
			// Unknown column, scan into a discard variable
			var discard any
			valuePtrs[i] = &discard
		}
	}

	return rows.Scan(valuePtrs...)
}
