// Command cleanup_outbox prunes delivered and permanently failed events from
// the outbox table. Intended to run as a scheduled job.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/sellerhub-service/internal/models/m_outbox"
)

type config struct {
	spannerDB          string
	completedRetention int
	failedRetention    int
	dryRun             bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.spannerDB, "database", "", "Spanner database (projects/P/instances/I/databases/D)")
	flag.IntVar(&cfg.completedRetention, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&cfg.failedRetention, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "Count without deleting")
	flag.Parse()

	if cfg.spannerDB == "" {
		log.Fatal("-database flag is required")
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	log.Println("Cleanup completed")
}

func run(ctx context.Context, cfg config) error {
	client, err := spanner.NewClient(ctx, cfg.spannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	completedCutoff := now.AddDate(0, 0, -cfg.completedRetention)
	failedCutoff := now.AddDate(0, 0, -cfg.failedRetention)

	log.Printf("completed cutoff %s, failed cutoff %s, dry-run %v",
		completedCutoff.Format(time.RFC3339), failedCutoff.Format(time.RFC3339), cfg.dryRun)

	params := map[string]interface{}{
		"completedStatus": m_outbox.StatusCompleted,
		"failedStatus":    m_outbox.StatusFailed,
		"completedCutoff": completedCutoff,
		"failedCutoff":    failedCutoff,
	}
	where := fmt.Sprintf(
		"(%[1]s = @completedStatus AND %[2]s < @completedCutoff) OR (%[1]s = @failedStatus AND %[2]s < @failedCutoff)",
		m_outbox.Status, m_outbox.ProcessedAt,
	)

	if cfg.dryRun {
		stmt := spanner.Statement{
			SQL:    fmt.Sprintf("SELECT %s, COUNT(*) FROM %s WHERE %s GROUP BY %s", m_outbox.Status, m_outbox.TableName, where, m_outbox.Status),
			Params: params,
		}
		iter := client.Single().Query(ctx, stmt)
		defer iter.Stop()

		var total int64
		for {
			row, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to query events: %w", err)
			}
			var status string
			var count int64
			if err := row.Columns(&status, &count); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			log.Printf("would delete %d %s events", count, status)
			total += count
		}
		log.Printf("DRY RUN: would delete %d events total", total)
		return nil
	}

	_, err = client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		stmt := spanner.Statement{
			SQL:    fmt.Sprintf("DELETE FROM %s WHERE %s", m_outbox.TableName, where),
			Params: params,
		}
		deleted, err := txn.Update(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		log.Printf("deleted %d events", deleted)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}
	return nil
}
