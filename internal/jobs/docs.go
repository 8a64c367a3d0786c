// Package jobs provides scheduled background tasks for the order-action engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. DeliveredSyncJob - Runs every minute to promote shipped orders whose
// transit time has elapsed to DELIVERED, stamping the delivery date used for
// refund-window checks.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(syncDeliveredHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep ignores the expected no-orders-due case and logs everything else;
// a failed sweep run leaves the orders untouched and is retried on the next
// tick.
package jobs
