package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/carenest/internal/models"
)

const medUsage = "carenest med <list|add> <profileId> | carenest med <toggle|delete> <profileId> <medId>"

func (c *Cli) runMed(ctx context.Context, args []string) error {
	if err := need(args, 2, medUsage); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runMedList(ctx, args[1])
	case "add":
		return c.runMedAdd(ctx, args[1])
	}

	if err := need(args, 3, medUsage); err != nil {
		return err
	}

	switch args[0] {
	case "toggle":
		med, err := c.dataService.ToggleTaken(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		c.io.Printf("✓ %s marked as %s.\n", med.Name, takenLabel(med.Taken))
		return nil
	case "delete":
		if err := c.dataService.DeleteMedication(ctx, args[1], args[2]); err != nil {
			return err
		}
		c.io.Println("✓ Medication deleted.")
		return nil
	default:
		return fmt.Errorf("%w: med %s. Usage: %s", ErrUnknownCommand, args[0], medUsage)
	}
}

func takenLabel(taken bool) string {
	if taken {
		return "taken"
	}
	return "not taken"
}

func (c *Cli) runMedList(ctx context.Context, profileID string) error {
	p, err := c.dataService.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	c.io.Printf("=== Medications: %s ===\n", p.DisplayName())
	c.io.Println()

	meds := c.dataService.ListMedications(ctx, profileID)
	if len(meds) == 0 {
		c.io.Println("No medications.")
		return nil
	}

	for i, m := range meds {
		mark := " "
		if m.Taken {
			mark = "x"
		}
		c.io.Printf("%d. [%s] %s\n", i+1, mark, m.Name)
		if m.Time != "" {
			c.io.Printf("   Time:  %s\n", m.Time)
		}
		if m.Notes != "" {
			c.io.Printf("   Notes: %s\n", m.Notes)
		}
		c.io.Printf("   ID:    %s\n", m.ID)
	}

	return nil
}

func (c *Cli) runMedAdd(ctx context.Context, profileID string) error {
	c.io.Println("=== Add Medication ===")
	c.io.Println()

	var (
		med models.Medication
		err error
	)
	if med.Name, err = c.promptDefault("Name", ""); err != nil {
		return err
	}
	if med.Time, err = c.promptDefault("Time (HH:MM, optional)", ""); err != nil {
		return err
	}
	if med.Notes, err = c.promptDefault("Notes (optional)", ""); err != nil {
		return err
	}

	added, err := c.dataService.AddMedication(ctx, profileID, med)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Medication added!")
	c.io.Printf("ID: %s\n", added.ID)
	return nil
}
