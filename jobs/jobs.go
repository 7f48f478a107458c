package jobs

import (
	"SmartCare360/logger"

	"github.com/robfig/cron/v3"
)

const DraftSweepSpec = "@every 5m"

// DraftSweeper is the in-memory chat draft store.
type DraftSweeper interface {
	Sweep() int
	Len() int
}

type DraftGauge interface {
	SetChatDrafts(n int)
}

/*
* StartDraftSweeper removes abandoned chat drafts on a schedule
* The returned cron must be stopped on shutdown
 */
func StartDraftSweeper(drafts DraftSweeper, gauge DraftGauge, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(DraftSweepSpec, func() {
		RunDraftSweep(drafts, gauge, log)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.WithComponent("jobs").WithField("spec", DraftSweepSpec).Info("Chat draft sweeper scheduled")
	return c, nil
}

func RunDraftSweep(drafts DraftSweeper, gauge DraftGauge, log *logger.Logger) int {
	removed := drafts.Sweep()
	remaining := drafts.Len()
	if gauge != nil {
		gauge.SetChatDrafts(remaining)
	}
	if removed > 0 {
		log.WithComponent("jobs").WithField("removed", removed).WithField("remaining", remaining).
			Info("Swept expired chat drafts")
	}
	return removed
}
