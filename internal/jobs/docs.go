// Package jobs provides scheduled background tasks for the order lifecycle
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OverdueDeliveryJob - Runs hourly to find in-progress orders past their
// delivery date and publish an overdue event for each.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(notifyOverdueHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep logs failures and retries on the next tick; a failed publish for
// one order does not abort the rest of the sweep.
package jobs
