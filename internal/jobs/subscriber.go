package jobs

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/realtime"
)

// SyncOnChange returns a realtime handler that queues an achievement sync
// for the user named by each event. A full queue drops the request; the
// next change for that user queues it again.
func SyncOnChange(queue JobQueue) realtime.Handler {
	return func(ctx context.Context, e realtime.Event) {
		if e.UserID == "" {
			return
		}
		if err := queue.EnqueueAchievementSync(e.UserID); err != nil {
			logger.FromContext(ctx).Warn("could not queue achievement sync for %s after %s: %v", e.UserID, e.Type, err)
		}
	}
}
