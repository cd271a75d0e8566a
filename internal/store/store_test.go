package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "moneydetectives.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return st, path
}

func TestPutAllGetAll(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	if err := st.PutAll(ctx, map[string]string{"wallet": "7", "playerName": "Ada"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.PutAll(ctx, map[string]string{"wallet": "9"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := st.GetAll(ctx, []string{"wallet", "playerName", "avatar"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got["wallet"] != "9" || got["playerName"] != "Ada" {
		t.Fatalf("unexpected values %v", got)
	}
	if _, ok := got["avatar"]; ok {
		t.Fatalf("unwritten key must be absent")
	}
}

func TestPutAllCanceledContextWritesNothing(t *testing.T) {
	st, _ := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := st.PutAll(ctx, map[string]string{"wallet": "1", "leaderboard": "[]"}); err == nil {
		t.Fatalf("expected error on canceled context")
	}
	got, err := st.GetAll(context.Background(), []string{"wallet", "leaderboard"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no partial write, got %v", got)
	}
}

func TestReopenKeepsDataAndMigrationIsIdempotent(t *testing.T) {
	st, path := openTestStore(t)
	ctx := context.Background()
	if err := st.PutAll(ctx, map[string]string{"wallet": "3"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		if err := again.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()
	got, err := again.GetAll(ctx, []string{"wallet"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["wallet"] != "3" {
		t.Fatalf("expected persisted wallet, got %v", got)
	}
}

func TestUpdatedAtAndDeleteAll(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }

	if _, ok, err := st.UpdatedAt(ctx, "wallet"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := st.PutAll(ctx, map[string]string{"wallet": "1"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	at, ok, err := st.UpdatedAt(ctx, "wallet")
	if err != nil || !ok || !at.Equal(fixed) {
		t.Fatalf("expected %v, got %v ok=%v err=%v", fixed, at, ok, err)
	}

	if err := st.DeleteAll(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := st.GetAll(ctx, []string{"wallet"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %v", got)
	}
}
