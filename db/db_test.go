package db

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/domain"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_*.db")
	if err != nil {
		t.Fatalf("os.CreateTemp() failed: %v", err)
	}
	tempFile.Close()

	dbConn, err := New(tempFile.Name())
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}

	repo := NewRunRepo(dbConn)

	teardown := func() {
		repo.Close()
		os.Remove(tempFile.Name())
	}

	return repo, teardown
}

func testRun(t *testing.T, repo *Repository, startedAt time.Time) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("creating uuid: %v", err)
	}

	run := &domain.Run{
		ID:         id,
		Mode:       domain.ModePriority,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(time.Second),
	}

	err = repo.InsertRun(run)
	if err != nil {
		t.Fatalf("inserting run: %v", err)
	}
	return id
}
