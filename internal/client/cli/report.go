package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/carenest/internal/client/summary"
)

const summaryUsage = "carenest summary <profileId> [days]"

func (c *Cli) runSummary(ctx context.Context, args []string) error {
	if err := need(args, 1, summaryUsage); err != nil {
		return err
	}

	days := summary.DefaultDays
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("days: %w: %q", ErrInvalidNumber, args[1])
		}
		days = n
	}

	s, err := c.summary.Build(ctx, args[0], days)
	if err != nil {
		return err
	}

	return summary.Render(c.io, s)
}

func (c *Cli) runOrphans(ctx context.Context, args []string) error {
	purge := len(args) > 0 && args[0] == "--purge"

	c.io.Println("=== Orphaned Records ===")
	c.io.Println()

	orphans, err := c.dataService.FindOrphans(ctx)
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		c.io.Println("No orphaned records.")
		return nil
	}

	for _, key := range orphans {
		c.io.Printf("  %s\n", key)
	}
	c.io.Println()

	if !purge {
		c.io.Printf("%d record(s) belong to deleted profiles.\n", len(orphans))
		c.io.Println("Run 'carenest orphans --purge' to remove them.")
		return nil
	}

	removed, err := c.dataService.PurgeOrphans(ctx)
	c.io.Printf("✓ Removed %d record(s).\n", len(removed))
	return err
}
