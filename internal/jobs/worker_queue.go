package jobs

import (
	"sync"

	"github.com/bbaxromov14/eduhelper/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool. A sync request for a
// user who already has one waiting in the queue is absorbed by it.
type WorkerQueue struct {
	pool   *worker.Pool
	syncer worker.AchievementSyncer

	mu      sync.Mutex
	pending map[string]bool
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, syncer worker.AchievementSyncer) *WorkerQueue {
	return &WorkerQueue{
		pool:    pool,
		syncer:  syncer,
		pending: make(map[string]bool),
	}
}

func (q *WorkerQueue) EnqueueAchievementSync(userID string) error {
	q.mu.Lock()
	if q.pending[userID] {
		q.mu.Unlock()
		return nil
	}
	q.pending[userID] = true
	q.mu.Unlock()

	err := q.pool.Submit(&worker.SyncAchievementsJob{
		Syncer:  q.syncer,
		UserID:  userID,
		OnStart: func() { q.done(userID) },
	})
	if err != nil {
		q.done(userID)
	}
	return err
}

// Pending reports how many users have a sync waiting.
func (q *WorkerQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *WorkerQueue) done(userID string) {
	q.mu.Lock()
	delete(q.pending, userID)
	q.mu.Unlock()
}
