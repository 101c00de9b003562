package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled run. Errors are logged and do not stop the loop.
type Job func(ctx context.Context) error

// Run waits for each tick of sched and runs job, one run at a time, until
// ctx is cancelled.
func Run(ctx context.Context, sched cron.Schedule, loc *time.Location, job Job) error {
	if loc == nil {
		loc = time.Local
	}
	for {
		now := time.Now().In(loc)
		next := sched.Next(now)
		wait := next.Sub(now)
		log.Printf("Next evaluation at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := job(ctx); err != nil {
			log.Printf("Scheduled evaluation error: %v", err)
		}
	}
}
