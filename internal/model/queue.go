package model

import (
	"fmt"
	"sync"
	"time"
)

type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

// Queue is the matchmaking waiting list, oldest first.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
	now     func() time.Time
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
		now:     time.Now,
	}
}

// find returns the index of playerID, or -1. Callers hold q.mu.
func (q *Queue) find(playerID string) int {
	for i, p := range q.players {
		if p.Player.ID == playerID {
			return i
		}
	}
	return -1
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.find(player.ID) >= 0 {
		return fmt.Errorf("queue %s: %w", player.ID, ErrAlreadyQueued)
	}
	q.players = append(q.players, QueuedPlayer{Player: player, JoinedAt: q.now()})
	return nil
}

// GetNextPair removes and returns the two players who have waited longest.
// ok is false when fewer than two are waiting.
func (q *Queue) GetNextPair() (first, second Player, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return Player{}, Player{}, false
	}
	first, second = q.players[0].Player, q.players[1].Player
	q.players = q.players[2:]
	return first, second, true
}

// Remove drops playerID from the queue and reports whether it was waiting.
func (q *Queue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.find(playerID)
	if i < 0 {
		return false
	}
	q.players = append(q.players[:i], q.players[i+1:]...)
	return true
}

// JoinedAt reports when playerID entered the queue.
func (q *Queue) JoinedAt(playerID string) (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.find(playerID)
	if i < 0 {
		return time.Time{}, false
	}
	return q.players[i].JoinedAt, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
