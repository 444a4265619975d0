package memory

import (
	"context"
	"testing"
	"time"

	"dietcoach/internal/domain"
)

func TestProfileRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

	got, err := db.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for unknown user")
	}

	p := domain.NewProfile("u1", now)
	p.Sex = domain.SexFemale
	p.Age = 28
	if err := db.PutProfile(ctx, p); err != nil {
		t.Fatalf("PutProfile: %v", err)
	}

	// Mutating the original must not leak into the store.
	p.Age = 99

	got, err = db.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got == nil || got.Age != 28 {
		t.Fatalf("stored profile = %+v, want age 28", got)
	}

	if err := db.DeleteProfile(ctx, "u1"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	got, _ = db.GetProfile(ctx, "u1")
	if got != nil {
		t.Error("profile survived delete")
	}

	// Deleting an unknown user is a no-op.
	if err := db.DeleteProfile(ctx, "ghost"); err != nil {
		t.Errorf("DeleteProfile(unknown): %v", err)
	}
}

func TestChatSessionRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

	got, err := db.GetSession(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for unknown user")
	}

	s := domain.NewChatSession("u1", now)
	s.Stage = domain.StageAwaitingAge
	if err := db.PutSession(ctx, s); err != nil {
		t.Fatalf("PutSession: %v", err)
	}

	got, err = db.GetSession(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.Stage != domain.StageAwaitingAge {
		t.Fatalf("stored session = %+v", got)
	}

	if err := db.DeleteSession(ctx, "u1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	got, _ = db.GetSession(ctx, "u1")
	if got != nil {
		t.Error("session survived delete")
	}
}

func TestWeightRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	base := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

	// Append out of timestamp order; reads must come back ascending.
	for _, e := range []struct {
		daysAgo int
		value   float64
	}{{0, 70}, {5, 71}, {2, 70.5}} {
		id, err := db.AppendWeight(ctx, domain.WeightLog{
			UserID:    "u1",
			ValueKg:   e.value,
			CreatedAt: base.AddDate(0, 0, -e.daysAgo),
		})
		if err != nil {
			t.Fatalf("AppendWeight: %v", err)
		}
		if id == 0 {
			t.Error("expected a non-zero ID")
		}
	}
	if _, err := db.AppendWeight(ctx, domain.WeightLog{UserID: "u2", ValueKg: 90, CreatedAt: base}); err != nil {
		t.Fatalf("AppendWeight: %v", err)
	}

	logs, err := db.ListWeightsSince(ctx, "u1", time.Time{})
	if err != nil {
		t.Fatalf("ListWeightsSince: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("got %d entries, want 3", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].CreatedAt.Before(logs[i-1].CreatedAt) {
			t.Fatalf("entries not ascending: %+v", logs)
		}
	}

	// since filters inclusively.
	logs, err = db.ListWeightsSince(ctx, "u1", base.AddDate(0, 0, -2))
	if err != nil {
		t.Fatalf("ListWeightsSince: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("got %d entries since day -2, want 2", len(logs))
	}

	// Other users are isolated.
	logs, _ = db.ListWeightsSince(ctx, "u2", time.Time{})
	if len(logs) != 1 || logs[0].ValueKg != 90 {
		t.Errorf("u2 ledger = %+v", logs)
	}

	if err := db.PurgeWeights(ctx, "u1"); err != nil {
		t.Fatalf("PurgeWeights: %v", err)
	}
	logs, _ = db.ListWeightsSince(ctx, "u1", time.Time{})
	if len(logs) != 0 {
		t.Errorf("purge left %d entries", len(logs))
	}
	logs, _ = db.ListWeightsSince(ctx, "u2", time.Time{})
	if len(logs) != 1 {
		t.Error("purge of u1 touched u2's ledger")
	}
}

func TestOperatorRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	n, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh store has %d operators", n)
	}

	op, err := db.Create(ctx, "admin", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if op.ID == 0 {
		t.Error("expected a non-zero ID")
	}

	if _, err := db.Create(ctx, "admin", "other"); err == nil {
		t.Error("expected duplicate username to fail")
	}

	got, err := db.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got == nil || got.PasswordHash != "hash" {
		t.Fatalf("GetByUsername = %+v", got)
	}

	got, err = db.GetByID(ctx, op.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Username != "admin" {
		t.Fatalf("GetByID = %+v", got)
	}

	got, _ = db.GetByUsername(ctx, "nobody")
	if got != nil {
		t.Error("expected nil for unknown username")
	}
}

func TestConsoleSessionRepo(t *testing.T) {
	db := New()
	repo := db.NewConsoleSessionRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, 1, "tok-live", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, 1, "tok-old", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := repo.GetByToken(ctx, "tok-live")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s == nil || s.OperatorID != 1 {
		t.Fatalf("GetByToken = %+v", s)
	}

	// Expired sessions read as absent.
	s, err = repo.GetByToken(ctx, "tok-old")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s != nil {
		t.Error("expired session still readable")
	}

	if err := repo.Delete(ctx, "tok-live"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	s, _ = repo.GetByToken(ctx, "tok-live")
	if s != nil {
		t.Error("session survived delete")
	}

	if err := repo.Create(ctx, 2, "tok-stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
}
