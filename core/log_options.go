// Package core provides fundamental utilities for the zoneamento library.
// This file contains option functions for customizing log entries.
package core

import (
	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/domain"
)

// LogWithContext is an option to add a context map to a log entry.
func LogWithContext(context map[string]any) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.Context = context
		return nil
	}
}

// LogWithRunID is an option to associate a log entry with a classification run.
func LogWithRunID(id uuid.UUID) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.RunID = &id
		return nil
	}
}

// LogWithLayer is an option to associate a log entry with a layer name.
func LogWithLayer(name string) func(log *domain.Log) error {
	return func(log *domain.Log) error {
		log.LayerName = &name
		return nil
	}
}
