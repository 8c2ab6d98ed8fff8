package scores

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBestWithoutRuns(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Best(context.Background()); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("best on empty store = %v, want ErrNoRuns", err)
	}
}

func TestRecordFillsDefaults(t *testing.T) {
	s := openTestStore(t)
	r, err := s.Record(context.Background(), Run{Score: 3, Level: 2})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if r.ID == uuid.Nil {
		t.Fatal("record did not assign an id")
	}
	if r.EndedAt.IsZero() {
		t.Fatal("record did not stamp the end time")
	}
}

func TestRecordRejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Record(context.Background(), Run{Score: -1, Level: 1}); err == nil {
		t.Fatal("expected error for negative score")
	}
	if _, err := s.Record(context.Background(), Run{Score: 1, Level: 0}); err == nil {
		t.Fatal("expected error for level 0")
	}
}

func TestBestAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	runs := []Run{
		{Score: 4, Level: 2, EndedAt: base},
		{Score: 9, Level: 4, EndedAt: base.Add(time.Minute)},
		{Score: 9, Level: 4, EndedAt: base.Add(2 * time.Minute)},
		{Score: 1, Level: 1, EndedAt: base.Add(3 * time.Minute)},
	}
	var recorded []Run
	for _, r := range runs {
		got, err := s.Record(ctx, r)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		recorded = append(recorded, got)
	}

	best, err := s.Best(ctx)
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if best.ID != recorded[1].ID {
		t.Fatalf("best = %+v, want the earlier score-9 run %s", best, recorded[1].ID)
	}
	if !best.EndedAt.Equal(runs[1].EndedAt) {
		t.Fatalf("best ended at %v, want %v", best.EndedAt, runs[1].EndedAt)
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != recorded[3].ID || recent[1].ID != recorded[2].ID {
		t.Fatalf("recent = %+v", recent)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.Record(ctx, Run{Score: 2, Level: 1}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Best(ctx); !errors.Is(err, ErrNoRuns) {
		t.Fatalf("best after clear = %v, want ErrNoRuns", err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Record(ctx, Run{Score: 5, Level: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	best, err := s.Best(ctx)
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if best.Score != 5 || best.Level != 3 {
		t.Fatalf("best after reopen = %+v", best)
	}
}
