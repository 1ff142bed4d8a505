package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/domain"
)

var _ domain.LogRepository = (*Repository)(nil)

// dbLog represents a log entry as stored in the database.
type dbLog struct {
	ID        uuid.UUID      `db:"id"`         // Unique identifier for the log entry.
	Timestamp time.Time      `db:"timestamp"`  // The time at which the log entry was created.
	Level     string         `db:"level"`      // The severity level of the log.
	Message   string         `db:"message"`    // The main content of the log message.
	Context   Metadata       `db:"context"`    // A map of additional key-value data for structured logging.
	RunID     sql.NullString `db:"run_id"`     // An optional ID of an associated classification run.
	LayerName sql.NullString `db:"layer_name"` // An optional name of an associated layer.
}

// toDomainLog converts a dbLog to a domain.Log.
func toDomainLog(dbLog *dbLog) *domain.Log {
	log := &domain.Log{
		ID:        dbLog.ID,
		Timestamp: dbLog.Timestamp,
		Level:     dbLog.Level,
		Message:   dbLog.Message,
		Context:   map[string]any(dbLog.Context),
	}

	if dbLog.RunID.Valid {
		if id, err := uuid.Parse(dbLog.RunID.String); err == nil {
			log.RunID = &id
		}
	}

	if dbLog.LayerName.Valid {
		name := dbLog.LayerName.String
		log.LayerName = &name
	}

	return log
}

// fromDomainLog converts a domain.Log to a dbLog.
func fromDomainLog(log *domain.Log) *dbLog {
	dbLog := &dbLog{
		ID:        log.ID,
		Timestamp: log.Timestamp,
		Level:     log.Level,
		Message:   log.Message,
		Context:   Metadata(log.Context),
	}

	if log.RunID != nil {
		dbLog.RunID = sql.NullString{String: log.RunID.String(), Valid: true}
	}

	if log.LayerName != nil {
		dbLog.LayerName = sql.NullString{String: *log.LayerName, Valid: true}
	}

	return dbLog
}

// InsertLog saves a new log entry to the database.
func (repo *Repository) InsertLog(log *domain.Log) error {
	dbLog := fromDomainLog(log)
	query := `INSERT INTO logs (id, level, timestamp, message, context, run_id, layer_name)
	          VALUES (:id, :level, :timestamp, :message, :context, :run_id, :layer_name)`

	_, err := repo.dbConn.NamedExec(query, dbLog)
	if err != nil {
		return fmt.Errorf("inserting log %s: %w", log.ID, err)
	}

	return nil
}

// GetLogs retrieves all log entries from the database.
func (repo *Repository) GetLogs() ([]*domain.Log, error) {
	var dbLogs []*dbLog
	query := `SELECT * FROM logs ORDER BY timestamp`

	err := repo.dbConn.Select(&dbLogs, query)
	if err != nil {
		return nil, fmt.Errorf("getting logs : %w", err)
	}

	logs := make([]*domain.Log, 0, len(dbLogs))
	for _, dbLog := range dbLogs {
		logs = append(logs, toDomainLog(dbLog))
	}
	return logs, nil
}
