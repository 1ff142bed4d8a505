// Package zoneamento classifies a set of polygon layers into mutually exclusive
// output regions by repeatedly intersecting and subtracting overlapping shapes,
// then tags each output feature with its computed area in hectares. It is
// designed to be decoupled from host applications and provides hooks for
// building land-use analysis tools on top of the overlay pipelines.
//
// The core functionality includes:
//   - Layer selection by name convention (environmental priority names or
//     positional Camada01..Camada04 names)
//   - Geometry conditioning (validity repair and coordinate-frame harmonization)
//   - A precedence-ordered intersection/difference pipeline for the
//     environmental layers (suppression area, APP, legal reserve)
//   - An exclusive-partition pipeline that derives the region unique to each
//     layer and merges them into a "Fora Total" output
//   - Area annotation (Area_ha) on every published partition
//   - Publication of results into an explicit layer registry, with optional
//     SQLite persistence of runs and partitions
package zoneamento

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/domain"
	"github.com/rcbarbosa/zoneamento/engine"
)

// Project is the main struct that orchestrates a classification run: layer
// selection, geometry conditioning, the overlay pipelines, area annotation and
// result publication. It reads input layers from the Registry and appends the
// derived partitions back to it; source layers are never mutated.
//
// A Project is single-threaded by design. Every geometry operation is a
// blocking call into the Engine and the pipelines are a strict sequence of
// such calls.
type Project struct {
	ConfigDir string                          // The configuration directory, set by WithConfigDir.
	Config    *Config                         // The project configuration (viper-backed when a config dir is set).
	Registry  *Registry                       // The layer registry read for inputs and written for outputs.
	Engine    engine.Engine                   // Geometry engine supplying repair, reprojection and overlay primitives.
	Repo      domain.Repository               // Optional run store; nil disables persistence.
	Logger    *slog.Logger                    // Structured logger; defaults to a discarding logger.
	OnPublish func(layer *domain.Layer) error // Host hook fired after each partition is published.
}

// New creates a Project with an empty registry, a discarding logger and
// default configuration, then applies the provided options.
func New(options ...func(*Project) error) (*Project, error) {
	project := &Project{
		Config:   &Config{},
		Registry: NewRegistry(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	err := project.WithOptions(options...)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Classify runs the full pipeline: select input layers by name convention,
// condition them, derive the mutually exclusive partitions for the detected
// mode, annotate areas and publish the results. It returns the completed run
// record, or ErrInsufficientInput when fewer than two layers match either
// naming convention (in which case no geometry work is performed).
//
// Engine failures inside a run never abort it; each failed operation degrades
// its one partition and the run completes with partial results.
func (project *Project) Classify() (*domain.Run, error) {
	if project.Engine == nil {
		return nil, fmt.Errorf("project has no geometry engine configured")
	}

	selection := project.Select()
	if selection.Mode == domain.ModeNone {
		project.WriteLog("WARN", "no layers matched either naming convention, need at least two")
		return nil, ErrInsufficientInput
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating run id : %w", err)
	}
	run := &domain.Run{
		ID:        runID,
		Mode:      selection.Mode,
		StartedAt: time.Now(),
	}

	switch selection.Mode {
	case domain.ModePriority:
		project.WriteLog("INFO", "environmental layers detected, running priority overlay")
		project.runPriority(run, selection.Layers)
	case domain.ModeGeneric:
		project.WriteLog("INFO", fmt.Sprintf("running exclusive-partition overlay on %d layers", len(selection.Layers)))
		project.runGeneric(run, selection.Layers)
	}
	run.FinishedAt = time.Now()

	if project.Repo != nil {
		if err := project.Repo.InsertRun(run); err != nil {
			return run, fmt.Errorf("recording run %s : %w", run.ID, err)
		}
		for _, partition := range run.Partitions {
			if err := project.Repo.InsertPartition(partition); err != nil {
				return run, fmt.Errorf("recording partition %q : %w", partition.Name, err)
			}
		}
	}
	return run, nil
}

// targetCRS resolves the common coordinate frame of a run: the configured
// target frame when set and valid, otherwise the frame of the base layer.
func (project *Project) targetCRS(base *domain.Layer) domain.CRS {
	if configured := domain.CRS(project.Config.TargetCRS); configured.Valid() {
		return configured
	}
	return base.CRS
}

// WriteLog emits a structured log entry and, when a repository is configured,
// records it synchronously. Log output is observability only; pipelines never
// branch on it.
func (project *Project) WriteLog(level string, message string, options ...func(log *domain.Log) error) error {
	switch level {
	case "DEBUG", "INFO", "WARN", "ERROR", "FATAL":
	default:
		return fmt.Errorf("level should be either: debug, info, warn, error, fatal")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating new uuid : %w", err)
	}
	entry := &domain.Log{
		ID:        id,
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
	for _, option := range options {
		if err := option(entry); err != nil {
			return fmt.Errorf("applying log option : %w", err)
		}
	}

	attrs := make([]any, 0, 6)
	if entry.RunID != nil {
		attrs = append(attrs, "run", entry.RunID.String())
	}
	if entry.LayerName != nil {
		attrs = append(attrs, "layer", *entry.LayerName)
	}
	if len(entry.Context) > 0 {
		attrs = append(attrs, "context", entry.Context)
	}
	project.Logger.Log(context.Background(), slogLevel(level), message, attrs...)

	if project.Repo != nil {
		if err := project.Repo.InsertLog(entry); err != nil {
			return fmt.Errorf("recording log : %w", err)
		}
	}
	return nil
}

func slogLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR", "FATAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
