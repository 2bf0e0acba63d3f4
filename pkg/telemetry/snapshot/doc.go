// Package snapshot renders periodic Prometheus expositions of a metrics
// registry.
//
// A Scheduler drives renders from a cron expression and hands the text to a
// publisher. The default publisher writes timestamped .prom files into a
// directory; a custom Publish function can ship the exposition anywhere
// (object storage, a pushgateway, a test channel).
//
//	sched, err := snapshot.New(snapshot.Config{
//	    Registry:  registry,
//	    Schedule:  "@every 30s",
//	    Directory: "data/snapshots",
//	    Logger:    logger,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := sched.Start(); err != nil {
//	    return err
//	}
//	defer sched.Stop()
//
// Publish failures are logged and do not stop the schedule.
package snapshot
