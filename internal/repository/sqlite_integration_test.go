package repository

import (
	"path/filepath"
	"testing"
	"time"

	"maize_maturity/internal/models"
	"maize_maturity/internal/repository/db"
)

func TestEventSQLite_RoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	repo := NewRepository(conn).EventRepo
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	events := []models.PredictionEvent{
		{OccurredAt: base, Type: models.EventPrediction, Description: "Mature", Metadata: map[string]any{"R": 100.0}},
		{OccurredAt: base.Add(time.Minute), Type: models.EventRejected, Description: "R must be between 0 and 255"},
		{OccurredAt: base.Add(2 * time.Minute), Type: models.EventPrediction, Description: "Immature"},
	}
	for _, e := range events {
		if err := repo.Append(ctx(t), e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := repo.List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 events, got %d", len(all))
	}
	if all[0].Description != "Mature" || all[2].Description != "Immature" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if all[0].EventID == "" {
		t.Fatalf("expected generated id")
	}

	preds, err := repo.List(ctx(t), base.Add(30*time.Second), time.Time{}, "prediction")
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(preds) != 1 || preds[0].Description != "Immature" {
		t.Fatalf("unexpected filtered events: %+v", preds)
	}
}
