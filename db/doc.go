// Package db implements the domain repository interfaces on SQLite. It
// persists classification runs, the partitions they published and log
// entries, using sqlx for query mapping and goose for schema migrations.
//
// Persistence is optional for the pipelines; a Project without a repository
// classifies exactly the same and only loses run history.
package db
