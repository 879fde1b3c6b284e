package store_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/persona-ai/goPersonaCoach/foundation/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := store.Record{
		SessionID:       "sess-001",
		Category:        "job-seekers",
		DurationSeconds: 312.5,
		Transcript:      "thanks for having me today",
		Scores:          json.RawMessage(`{"overallScore":74,"confidence":90}`),
		SpeechAnalysis:  json.RawMessage(`{"wordsPerMinute":128}`),
		CreatedAt:       time.Date(2026, 5, 2, 10, 30, 0, 0, time.UTC),
	}

	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "sess-001")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Category != rec.Category || got.DurationSeconds != rec.DurationSeconds {
		t.Fatalf("loaded %+v, want %+v", got, rec)
	}
	if got.Transcript != rec.Transcript {
		t.Fatalf("transcript = %q, want %q", got.Transcript, rec.Transcript)
	}
	if string(got.Scores) != string(rec.Scores) {
		t.Fatalf("scores = %s, want %s", got.Scores, rec.Scores)
	}
	// Empty blobs come back as the empty-object default.
	if string(got.ContentAnalysis) != "{}" {
		t.Fatalf("content analysis = %s, want {}", got.ContentAnalysis)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestSaveValidation(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(context.Background(), store.Record{Category: "students"}); err == nil {
		t.Fatal("record without a session id should fail")
	}
}

func TestSaveReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := store.Record{SessionID: "sess-002", Category: "students", DurationSeconds: 60}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec.DurationSeconds = 90
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := s.Load(ctx, "sess-002")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DurationSeconds != 90 {
		t.Fatalf("duration = %.1f after replace, want 90", got.DurationSeconds)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Load(context.Background(), "no-such-session"); err == nil {
		t.Fatal("loading a missing session should fail")
	}
}

func TestRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		rec := store.Record{
			SessionID: []string{"a", "b", "c", "d"}[i],
			Category:  "public-speakers",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("recent returned %d records, want 3", len(got))
	}
	for i, want := range []string{"d", "c", "b"} {
		if got[i].SessionID != want {
			t.Fatalf("recent[%d] = %s, want %s (newest first)", i, got[i].SessionID, want)
		}
	}
}
