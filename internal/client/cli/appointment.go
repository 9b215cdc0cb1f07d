package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/carenest/internal/models"
)

const apptUsage = "carenest appt <list|add> <profileId> | carenest appt delete <profileId> <apptId>"

func (c *Cli) runAppt(ctx context.Context, args []string) error {
	if err := need(args, 2, apptUsage); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runApptList(ctx, args[1])
	case "add":
		return c.runApptAdd(ctx, args[1])
	case "delete":
		if err := need(args, 3, apptUsage); err != nil {
			return err
		}
		if err := c.dataService.DeleteAppointment(ctx, args[1], args[2]); err != nil {
			return err
		}
		c.io.Println("✓ Appointment deleted.")
		return nil
	default:
		return fmt.Errorf("%w: appt %s. Usage: %s", ErrUnknownCommand, args[0], apptUsage)
	}
}

func (c *Cli) runApptList(ctx context.Context, profileID string) error {
	p, err := c.dataService.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	c.io.Printf("=== Appointments: %s ===\n", p.DisplayName())
	c.io.Println()

	appts := c.dataService.ListAppointments(ctx, profileID)
	if len(appts) == 0 {
		c.io.Println("No appointments.")
		return nil
	}

	for _, a := range appts {
		c.io.Printf("%s  %s\n", a.Date, a.Provider)
		if a.Reason != "" {
			c.io.Printf("   Reason:    %s\n", a.Reason)
		}
		if a.Notes != "" {
			c.io.Printf("   Notes:     %s\n", a.Notes)
		}
		if a.Tests != "" {
			c.io.Printf("   Tests:     %s\n", a.Tests)
		}
		if a.FollowUp != "" {
			c.io.Printf("   Follow-up: %s\n", a.FollowUp)
		}
		c.io.Printf("   ID:        %s\n", a.ID)
	}

	return nil
}

func (c *Cli) runApptAdd(ctx context.Context, profileID string) error {
	c.io.Println("=== Add Appointment ===")
	c.io.Println()

	var (
		appt models.Appointment
		err  error
	)
	fields := []struct {
		dst   *string
		label string
	}{
		{&appt.Date, "Date (YYYY-MM-DD)"},
		{&appt.Provider, "Doctor / provider"},
		{&appt.Reason, "Reason (optional)"},
		{&appt.Notes, "Notes (optional)"},
		{&appt.Tests, "Tests ordered (optional)"},
		{&appt.FollowUp, "Follow-up date (YYYY-MM-DD, optional)"},
	}
	for _, f := range fields {
		if *f.dst, err = c.promptDefault(f.label, ""); err != nil {
			return err
		}
	}

	added, err := c.dataService.AddAppointment(ctx, profileID, appt)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Appointment added!")
	c.io.Printf("ID: %s\n", added.ID)
	return nil
}
