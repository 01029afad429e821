// Package jobs provides scheduled background tasks for the roadside service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// (with seconds precision).
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes domain events stored in the outbox (default every 5 seconds)
// 2. PendingOrderExpiryJob - cancels online orders left unpaid past their TTL (default every minute)
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, "", metrics, logger)
//	expiry, err := jobs.NewPendingOrderExpiryJob(expiryHandler, "", 30*time.Minute, metrics, logger)
//	if err != nil {
//		return err
//	}
//	jobManager := jobs.NewJobManager(relay, expiry)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs never stop on a failed pass: the error is logged and the next tick
// tries again. Overlapping ticks are skipped rather than queued.
package jobs
