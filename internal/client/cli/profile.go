package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/carenest/internal/models"
)

const profileUsage = "carenest profile <list|add|show|edit|delete> [profileId]"

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if err := need(args, 1, profileUsage); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runProfileList(ctx)
	case "add":
		return c.runProfileAdd(ctx)
	}

	if err := need(args, 2, profileUsage); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		return c.runProfileShow(ctx, args[1])
	case "edit":
		return c.runProfileEdit(ctx, args[1])
	case "delete":
		return c.runProfileDelete(ctx, args[1])
	default:
		return fmt.Errorf("%w: profile %s. Usage: %s", ErrUnknownCommand, args[0], profileUsage)
	}
}

func (c *Cli) runProfileList(ctx context.Context) error {
	c.io.Println("=== Family Profiles ===")
	c.io.Println()

	profiles := c.dataService.ListProfiles(ctx)
	if len(profiles) == 0 {
		c.io.Println("No profiles yet.")
		c.io.Println()
		c.io.Println("Run 'carenest profile add' to create one.")
		return nil
	}

	for i, p := range profiles {
		c.io.Printf("%d. %s\n", i+1, p.DisplayName())
		c.io.Printf("   ID:  %s\n", p.ID)
		if p.Age != nil {
			c.io.Printf("   Age: %d\n", *p.Age)
		}
	}
	c.io.Println()
	c.io.Printf("Total: %d profile(s)\n", len(profiles))

	return nil
}

// readProfileInput prompts for every editable field, starting from current
func (c *Cli) readProfileInput(current models.ProfileInput) (models.ProfileInput, error) {
	in := current

	var err error
	if in.Name, err = c.promptDefault("Name", current.Name); err != nil {
		return in, err
	}
	if in.Nickname, err = c.promptDefault("Nickname (optional)", current.Nickname); err != nil {
		return in, err
	}

	age := ""
	if current.Age != nil {
		age = strconv.Itoa(*current.Age)
	}
	ageStr, err := c.promptDefault("Age (optional)", age)
	if err != nil {
		return in, err
	}
	if in.Age, err = models.ParseAgeString(ageStr); err != nil {
		return in, err
	}

	if in.Notes, err = c.promptDefault("Notes (optional)", current.Notes); err != nil {
		return in, err
	}

	return in, nil
}

func (c *Cli) runProfileAdd(ctx context.Context) error {
	c.io.Println("=== Add Profile ===")
	c.io.Println()

	in, err := c.readProfileInput(models.ProfileInput{})
	if err != nil {
		return err
	}

	p, err := c.dataService.AddProfile(ctx, in)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Profile added!")
	c.io.Printf("ID: %s\n", p.ID)
	return nil
}

func (c *Cli) runProfileShow(ctx context.Context, id string) error {
	p, err := c.dataService.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	if err := c.render("profile", p); err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("Daily logs:   %d\n", len(c.dataService.ListLogs(ctx, id)))
	c.io.Printf("Medications:  %d\n", len(c.dataService.ListMedications(ctx, id)))
	c.io.Printf("Appointments: %d\n", len(c.dataService.ListAppointments(ctx, id)))

	return nil
}

func (c *Cli) runProfileEdit(ctx context.Context, id string) error {
	p, err := c.dataService.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("=== Edit %s ===\n", p.DisplayName())
	c.io.Println("Press Enter to keep the current value.")
	c.io.Println()

	in, err := c.readProfileInput(models.ProfileInput{
		Name:     p.Name,
		Nickname: p.Nickname,
		Age:      p.Age,
		Notes:    p.Notes,
	})
	if err != nil {
		return err
	}

	if _, err := c.dataService.UpdateProfile(ctx, id, in); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Profile updated!")
	return nil
}

func (c *Cli) runProfileDelete(ctx context.Context, id string) error {
	p, err := c.dataService.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	c.io.Println("=== Delete Profile ===")
	c.io.Println()
	c.io.Printf("About to delete: %s\n", p.DisplayName())
	c.io.Println("Logs, medications, appointments and emergency info stay stored")
	c.io.Println("until you run 'carenest orphans --purge'.")
	c.io.Println()

	ok, err := c.confirm("Are you sure you want to delete this profile?")
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Deletion cancelled.")
		return nil
	}

	if err := c.dataService.DeleteProfile(ctx, id); err != nil {
		return err
	}

	c.io.Println("✓ Profile deleted.")
	return nil
}
