package domain

import (
	"time"

	"github.com/google/uuid"
)

// Log represents a log entry in the system, capturing skip and failure
// conditions from the pipelines. Log output is observability only; no caller
// inspects message content.
type Log struct {
	ID        uuid.UUID      // Unique identifier for the log entry.
	Timestamp time.Time      // When the log entry was created.
	Level     string         // Log level (DEBUG, INFO, WARN, ERROR, FATAL).
	Message   string         // Log message content.
	Context   map[string]any // Additional context data.
	RunID     *uuid.UUID     // Associated run ID if applicable.
	LayerName *string        // Associated layer name if applicable.
}

// LogRepository defines the interface for persisting log entries.
type LogRepository interface {
	// InsertLog saves a new log entry.
	InsertLog(log *Log) error

	// GetLogs retrieves all log entries.
	GetLogs() ([]*Log, error)
}

// Repository aggregates the persistence contracts consumed by a Project.
type Repository interface {
	RunRepository
	LogRepository

	// Close releases the underlying storage resources.
	Close() error
}
