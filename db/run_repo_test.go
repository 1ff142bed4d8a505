package db

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/domain"
)

func TestRunRepo_GetRuns(t *testing.T) {
	t.Run("should return 0 runs if there are none", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		got, err := repo.GetRuns()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(got))
		}
	})

	t.Run("should return runs most recent first", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		fixedTime := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
		olderID := testRun(t, repo, fixedTime)
		newerID := testRun(t, repo, fixedTime.Add(time.Minute))

		got, err := repo.GetRuns()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", len(got))
		}
		if got[0].ID != newerID || got[1].ID != olderID {
			t.Fatalf("\nwanted:\n[%s %s]\ngot:\n[%s %s]", newerID, olderID, got[0].ID, got[1].ID)
		}
	})

	t.Run("should round-trip the run fields", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		fixedTime := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
		run := &domain.Run{
			ID:         uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			Mode:       domain.ModeGeneric,
			StartedAt:  fixedTime,
			FinishedAt: fixedTime.Add(3 * time.Second),
		}
		if err := repo.InsertRun(run); err != nil {
			t.Fatalf("inserting run: %v", err)
		}

		got, err := repo.GetRuns()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(got) != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", len(got))
		}
		if got[0].ID != run.ID || got[0].Mode != domain.ModeGeneric {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", run, got[0])
		}
		if !got[0].StartedAt.Equal(run.StartedAt) || !got[0].FinishedAt.Equal(run.FinishedAt) {
			t.Fatalf("\nwanted:\n%v %v\ngot:\n%v %v", run.StartedAt, run.FinishedAt, got[0].StartedAt, got[0].FinishedAt)
		}
	})
}

func TestRunRepo_GetRunPartitions(t *testing.T) {
	t.Run("should return 0 partitions for a run without any", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		runID := testRun(t, repo, time.Now())

		got, err := repo.GetRunPartitions(runID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(got) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(got))
		}
	})

	t.Run("should return partitions in publication order", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		fixedTime := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
		runID := testRun(t, repo, fixedTime)

		names := []string{"Área de supressão em APP", "Área de supressão em RL", "Área de supressão fora"}
		// Inserted out of order on purpose; created_at decides the result order.
		for _, i := range []int{2, 0, 1} {
			partition := &domain.Partition{
				ID:           uuid.New(),
				RunID:        runID,
				Name:         names[i],
				FeatureCount: i + 1,
				AreaHa:       float64(i) * 0.5,
				CreatedAt:    fixedTime.Add(time.Duration(i) * time.Second),
			}
			if err := repo.InsertPartition(partition); err != nil {
				t.Fatalf("inserting partition: %v", err)
			}
		}

		got, err := repo.GetRunPartitions(runID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(got) != 3 {
			t.Fatalf("\nwanted:\n3\ngot:\n%d", len(got))
		}
		for i, partition := range got {
			if partition.Name != names[i] {
				t.Fatalf("\nwanted:\n%q at %d\ngot:\n%q", names[i], i, partition.Name)
			}
		}
	})

	t.Run("should not return partitions of other runs", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		fixedTime := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
		firstRun := testRun(t, repo, fixedTime)
		secondRun := testRun(t, repo, fixedTime.Add(time.Minute))

		partition := &domain.Partition{
			ID:        uuid.New(),
			RunID:     firstRun,
			Name:      "Fora Total",
			CreatedAt: fixedTime,
		}
		if err := repo.InsertPartition(partition); err != nil {
			t.Fatalf("inserting partition: %v", err)
		}

		got, err := repo.GetRunPartitions(secondRun)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if len(got) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(got))
		}
	})

	t.Run("should fail to insert a partition for an unknown run", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		partition := &domain.Partition{
			ID:        uuid.New(),
			RunID:     uuid.MustParse("00000000-0000-0000-0000-000000000099"),
			Name:      "Fora Total",
			CreatedAt: time.Now(),
		}
		if err := repo.InsertPartition(partition); err == nil {
			t.Fatalf("\nwanted:\nforeign key error\ngot:\nnil")
		}
	})
}
