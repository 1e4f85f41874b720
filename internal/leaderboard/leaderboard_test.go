package leaderboard

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewBoard(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestRecordAndTop(t *testing.T) {
	board := newTestBoard(t)
	ctx := context.Background()

	if err := board.Record(ctx, "alice", 300); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := board.Record(ctx, "bob", 500); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := board.Record(ctx, "carol", 100); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := board.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "bob" || entries[0].Rank != 1 || entries[0].TotalXP != 500 {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].UserID != "alice" || entries[1].Rank != 2 {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
}

func TestRecordOverwritesScore(t *testing.T) {
	board := newTestBoard(t)
	ctx := context.Background()

	_ = board.Record(ctx, "alice", 300)
	_ = board.Record(ctx, "alice", 450)

	entries, err := board.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(entries) != 1 || entries[0].TotalXP != 450 {
		t.Errorf("expected single entry at 450, got %+v", entries)
	}
}

func TestRank(t *testing.T) {
	board := newTestBoard(t)
	ctx := context.Background()

	_ = board.Record(ctx, "alice", 300)
	_ = board.Record(ctx, "bob", 500)

	rank, err := board.Rank(ctx, "alice")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 2 {
		t.Errorf("expected rank 2, got %d", rank)
	}

	rank, err = board.Rank(ctx, "nobody")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 0 {
		t.Errorf("expected 0 for unranked user, got %d", rank)
	}
}

func TestNilClientIsNoOp(t *testing.T) {
	board := NewBoard(nil)
	ctx := context.Background()

	if err := board.Record(ctx, "alice", 300); err != nil {
		t.Fatalf("record on nil client: %v", err)
	}
	entries, err := board.Top(ctx, 10)
	if err != nil || entries != nil {
		t.Fatalf("expected empty result, got %v, %v", entries, err)
	}
}
