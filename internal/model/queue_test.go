package model

import (
	"errors"
	"testing"
	"time"
)

func TestQueuePairsOldestFirst(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := q.AddPlayer(Player{ID: "b"}); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("duplicate add: err = %v, want ErrAlreadyQueued", err)
	}

	p1, p2, ok := q.GetNextPair()
	if !ok || p1.ID != "a" || p2.ID != "b" {
		t.Fatalf("pair = %v %v %v, want a b", p1, p2, ok)
	}
	if _, _, ok := q.GetNextPair(); ok {
		t.Fatal("paired a lone player")
	}
	if _, ok := q.JoinedAt("c"); !ok || q.Size() != 1 {
		t.Fatalf("queue size = %d, want only c", q.Size())
	}
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	_ = q.AddPlayer(Player{ID: "a"})
	_ = q.AddPlayer(Player{ID: "b"})

	if !q.Remove("a") {
		t.Fatal("Remove(a) = false")
	}
	if q.Remove("a") {
		t.Fatal("removed a twice")
	}
	if _, ok := q.JoinedAt("a"); ok || q.Size() != 1 {
		t.Fatal("a still queued")
	}
}

func TestQueueJoinedAt(t *testing.T) {
	q := NewQueue()
	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return joined }

	_ = q.AddPlayer(Player{ID: "a"})
	got, ok := q.JoinedAt("a")
	if !ok || !got.Equal(joined) {
		t.Fatalf("JoinedAt(a) = %v, %v", got, ok)
	}
}
