package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/carenest/internal/models"
)

const logUsage = "carenest log <add|list> <profileId> | carenest log delete <logKey>"

func (c *Cli) runLog(ctx context.Context, args []string) error {
	if err := need(args, 2, logUsage); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		return c.runLogAdd(ctx, args[1])
	case "list":
		return c.runLogList(ctx, args[1])
	case "delete":
		return c.runLogDelete(ctx, args[1])
	default:
		return fmt.Errorf("%w: log %s. Usage: %s", ErrUnknownCommand, args[0], logUsage)
	}
}

func (c *Cli) runLogAdd(ctx context.Context, profileID string) error {
	p, err := c.dataService.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	c.io.Printf("=== Daily Log: %s ===\n", p.DisplayName())
	c.io.Println("Press Enter to keep the suggested value.")
	c.io.Println()

	log := c.dataService.NewDailyLog(profileID)

	if log.Date, err = c.promptDefault("Date (YYYY-MM-DD)", log.Date); err != nil {
		return err
	}
	if log.Time, err = c.promptDefault("Time (HH:MM)", log.Time); err != nil {
		return err
	}
	if log.Symptoms, err = c.promptDefault("Symptoms", log.Symptoms); err != nil {
		return err
	}
	if log.Intensity, err = c.promptInt("Intensity (1-10)", log.Intensity); err != nil {
		return err
	}
	if log.Sleep, err = c.promptInt("Sleep quality (1-5)", log.Sleep); err != nil {
		return err
	}
	if log.Appetite, err = c.promptInt("Appetite (1-5)", log.Appetite); err != nil {
		return err
	}
	if log.Mood, err = c.promptInt("Mood (1-5)", log.Mood); err != nil {
		return err
	}
	if log.Hydration, err = c.promptInt("Water (glasses)", log.Hydration); err != nil {
		return err
	}
	if log.Notes, err = c.promptDefault("Notes / triggers", log.Notes); err != nil {
		return err
	}

	key, err := c.dataService.SaveLog(ctx, log)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Log saved!")
	c.io.Printf("Key: %s\n", key)
	return nil
}

func (c *Cli) runLogList(ctx context.Context, profileID string) error {
	p, err := c.dataService.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	c.io.Printf("=== Daily Logs: %s ===\n", p.DisplayName())
	c.io.Println()

	entries := c.dataService.ListLogs(ctx, profileID)
	if len(entries) == 0 {
		c.io.Println("No logs yet.")
		return nil
	}

	for _, e := range entries {
		l := e.Log
		c.io.Printf("%s %s  intensity %d/10\n", l.Date, l.Time, l.Intensity)
		if l.Symptoms != "" {
			c.io.Printf("   Symptoms: %s\n", l.Symptoms)
		}
		c.io.Printf("   Sleep: %s, Appetite: %s, Mood: %s, Water: %d\n",
			models.SleepLabel(l.Sleep), models.AppetiteLabel(l.Appetite), models.MoodLabel(l.Mood), l.Hydration)
		if l.Notes != "" {
			c.io.Printf("   Notes: %s\n", l.Notes)
		}
		c.io.Printf("   Key: %s\n", e.Key)
	}
	c.io.Println()
	c.io.Printf("Total: %d log(s)\n", len(entries))

	return nil
}

func (c *Cli) runLogDelete(ctx context.Context, key string) error {
	if err := c.dataService.DeleteLog(ctx, key); err != nil {
		return err
	}

	c.io.Println("✓ Log deleted.")
	return nil
}
