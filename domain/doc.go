// Package domain defines the core data structures of the zoneamento library.
// It contains the primary domain models, such as Layer, Feature and Run,
// as well as the repository interfaces that define the contracts for data persistence.
//
// This package serves as the central point for application-wide types and business rules,
// ensuring a clean separation between the overlay pipelines and their implementation details,
// such as the geometry engine or the run store. By defining interfaces for repositories,
// the domain package remains independent of the data storage technology.
package domain
