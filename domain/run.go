package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mode identifies which overlay pipeline a classification run used.
type Mode string

const (
	// ModePriority is the overlay pipeline driven by the three precedence-ordered
	// environmental layers (suppression area, APP, legal reserve).
	ModePriority Mode = "priority"
	// ModeGeneric is the exclusive-partition pipeline driven by up to four
	// positionally named layers (Camada01..Camada04).
	ModeGeneric Mode = "generic"
	// ModeNone means fewer than two layers matched either naming convention.
	ModeNone Mode = "none"
)

// Run records one execution of the classification pipeline and the partitions
// it published.
type Run struct {
	ID         uuid.UUID    // Unique identifier for the run.
	Mode       Mode         // Which pipeline produced the partitions.
	StartedAt  time.Time    // When the run started.
	FinishedAt time.Time    // When the run completed.
	Partitions []*Partition // The partitions published by the run.
}

// Partition records one published output layer of a run. Partitions of the
// same run share no area by construction.
type Partition struct {
	ID           uuid.UUID // Unique identifier for the partition record.
	RunID        uuid.UUID // The run that produced the partition.
	Name         string    // Published layer name, e.g. "Fora Total".
	FeatureCount int       // Number of features in the published layer.
	AreaHa       float64   // Total annotated area of the layer in hectares.
	CreatedAt    time.Time // When the partition was published.
}

// RunRepository defines the interface for persisting classification runs and
// the partitions they published.
type RunRepository interface {
	// InsertRun saves a completed run. The run's partitions are not saved
	// implicitly; use InsertPartition for each.
	InsertRun(run *Run) error

	// InsertPartition saves one published partition record.
	InsertPartition(partition *Partition) error

	// GetRuns retrieves all recorded runs, most recent first, without their partitions.
	GetRuns() ([]*Run, error)

	// GetRunPartitions retrieves the partitions published by the given run.
	GetRunPartitions(runID uuid.UUID) ([]*Partition, error)
}
