package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/carenest/internal/models"
)

const emergencyUsage = "carenest emergency <show|add-allergy|remove-allergy|add-contact|remove-contact|hospital|insurance> <profileId> [value]"

func (c *Cli) runEmergency(ctx context.Context, args []string) error {
	if err := need(args, 2, emergencyUsage); err != nil {
		return err
	}

	sub, profileID, rest := args[0], args[1], args[2:]

	switch sub {
	case "show":
		if _, err := c.dataService.GetProfile(ctx, profileID); err != nil {
			return err
		}
		return c.render("emergency", c.dataService.GetEmergency(ctx, profileID))
	case "add-allergy":
		allergy, err := c.valueOrPrompt(rest, "Allergy")
		if err != nil {
			return err
		}
		if err := c.dataService.AddAllergy(ctx, profileID, allergy); err != nil {
			return err
		}
		c.io.Println("✓ Allergy added.")
		return nil
	case "remove-allergy":
		if err := need(rest, 1, emergencyUsage); err != nil {
			return err
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("allergy number: %w: %q", ErrInvalidNumber, rest[0])
		}
		// Пользователь видит нумерацию с единицы
		if err := c.dataService.RemoveAllergy(ctx, profileID, n-1); err != nil {
			return err
		}
		c.io.Println("✓ Allergy removed.")
		return nil
	case "add-contact":
		return c.runAddContact(ctx, profileID)
	case "remove-contact":
		if err := need(rest, 1, emergencyUsage); err != nil {
			return err
		}
		if err := c.dataService.RemoveContact(ctx, profileID, rest[0]); err != nil {
			return err
		}
		c.io.Println("✓ Contact removed.")
		return nil
	case "hospital":
		hospital, err := c.valueOrPrompt(rest, "Preferred hospital (empty to clear)")
		if err != nil {
			return err
		}
		if err := c.dataService.SetHospital(ctx, profileID, hospital); err != nil {
			return err
		}
		c.io.Println("✓ Hospital saved.")
		return nil
	case "insurance":
		insurance, err := c.valueOrPrompt(rest, "Insurance info (empty to clear)")
		if err != nil {
			return err
		}
		if err := c.dataService.SetInsurance(ctx, profileID, insurance); err != nil {
			return err
		}
		c.io.Println("✓ Insurance saved.")
		return nil
	default:
		return fmt.Errorf("%w: emergency %s. Usage: %s", ErrUnknownCommand, sub, emergencyUsage)
	}
}

// valueOrPrompt joins the remaining args or asks for the value
func (c *Cli) valueOrPrompt(rest []string, label string) (string, error) {
	if len(rest) > 0 {
		return strings.Join(rest, " "), nil
	}
	return c.promptDefault(label, "")
}

func (c *Cli) runAddContact(ctx context.Context, profileID string) error {
	c.io.Println("=== Add Emergency Contact ===")
	c.io.Println()

	var (
		contact models.Contact
		err     error
	)
	if contact.Name, err = c.promptDefault("Name", ""); err != nil {
		return err
	}
	if contact.Relationship, err = c.promptDefault("Relationship (optional)", ""); err != nil {
		return err
	}
	if contact.Phone, err = c.promptDefault("Phone", ""); err != nil {
		return err
	}

	added, err := c.dataService.AddContact(ctx, profileID, contact)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Contact added!")
	c.io.Printf("ID: %s\n", added.ID)
	return nil
}
