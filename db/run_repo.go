package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/domain"
)

var _ domain.RunRepository = (*Repository)(nil)

// dbRun represents a classification run as stored in the database.
type dbRun struct {
	ID         uuid.UUID `db:"id"`          // Unique identifier for the run.
	Mode       string    `db:"mode"`        // Pipeline that produced the partitions.
	StartedAt  time.Time `db:"started_at"`  // When the run started.
	FinishedAt time.Time `db:"finished_at"` // When the run completed.
}

// dbPartition represents a published partition as stored in the database.
type dbPartition struct {
	ID           uuid.UUID `db:"id"`            // Unique identifier for the partition record.
	RunID        uuid.UUID `db:"run_id"`        // The run that produced the partition.
	Name         string    `db:"name"`          // Published layer name.
	FeatureCount int       `db:"feature_count"` // Number of features in the published layer.
	AreaHa       float64   `db:"area_ha"`       // Total annotated area in hectares.
	CreatedAt    time.Time `db:"created_at"`    // When the partition was published.
}

func toDomainRun(run *dbRun) *domain.Run {
	return &domain.Run{
		ID:         run.ID,
		Mode:       domain.Mode(run.Mode),
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}

func toDomainPartition(partition *dbPartition) *domain.Partition {
	return &domain.Partition{
		ID:           partition.ID,
		RunID:        partition.RunID,
		Name:         partition.Name,
		FeatureCount: partition.FeatureCount,
		AreaHa:       partition.AreaHa,
		CreatedAt:    partition.CreatedAt,
	}
}

// InsertRun saves a completed classification run.
func (repo *Repository) InsertRun(run *domain.Run) error {
	record := &dbRun{
		ID:         run.ID,
		Mode:       string(run.Mode),
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
	query := `INSERT INTO runs (id, mode, started_at, finished_at)
	          VALUES (:id, :mode, :started_at, :finished_at)`

	_, err := repo.dbConn.NamedExec(query, record)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	return nil
}

// InsertPartition saves one published partition record.
func (repo *Repository) InsertPartition(partition *domain.Partition) error {
	record := &dbPartition{
		ID:           partition.ID,
		RunID:        partition.RunID,
		Name:         partition.Name,
		FeatureCount: partition.FeatureCount,
		AreaHa:       partition.AreaHa,
		CreatedAt:    partition.CreatedAt,
	}
	query := `INSERT INTO partitions (id, run_id, name, feature_count, area_ha, created_at)
	          VALUES (:id, :run_id, :name, :feature_count, :area_ha, :created_at)`

	_, err := repo.dbConn.NamedExec(query, record)
	if err != nil {
		return fmt.Errorf("inserting partition %q for run %s: %w", partition.Name, partition.RunID, err)
	}
	return nil
}

// GetRuns retrieves all recorded runs, most recent first, without their partitions.
func (repo *Repository) GetRuns() ([]*domain.Run, error) {
	var records []*dbRun
	query := `SELECT * FROM runs ORDER BY started_at DESC`

	err := repo.dbConn.Select(&records, query)
	if err != nil {
		return nil, fmt.Errorf("getting runs : %w", err)
	}

	runs := make([]*domain.Run, 0, len(records))
	for _, record := range records {
		runs = append(runs, toDomainRun(record))
	}
	return runs, nil
}

// GetRunPartitions retrieves the partitions published by the given run.
func (repo *Repository) GetRunPartitions(runID uuid.UUID) ([]*domain.Partition, error) {
	var records []*dbPartition
	query := `SELECT * FROM partitions WHERE run_id = ? ORDER BY created_at`

	err := repo.dbConn.Select(&records, query, runID)
	if err != nil {
		return nil, fmt.Errorf("getting partitions for run %s : %w", runID, err)
	}

	partitions := make([]*domain.Partition, 0, len(records))
	for _, record := range records {
		partitions = append(partitions, toDomainPartition(record))
	}
	return partitions, nil
}
