package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/carenest/internal/client/auth"
)

func (c *Cli) runSetup(ctx context.Context) error {
	if state := c.authService.CurrentState(ctx); state == auth.StateLocked || state == auth.StateUnlocked {
		return auth.ErrAlreadyConfigured
	}

	c.io.Println("=== Create Access Code ===")
	c.io.Println()

	code, ok, err := c.codes.Resolve()
	if err != nil {
		return err
	}

	confirm := code
	if !ok {
		code, err = c.io.ReadPassword("Access code (min 4 characters): ")
		if err != nil {
			return fmt.Errorf("failed to read access code: %w", err)
		}
		confirm, err = c.io.ReadPassword("Confirm access code: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
	}

	if _, err := c.authService.Setup(ctx, code, confirm); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Access code created. You are logged in.")
	return nil
}

// runLogin checks the access code. Interactively a wrong code is reported
// and asked again until the user enters an empty line
func (c *Cli) runLogin(ctx context.Context) error {
	switch c.authService.CurrentState(ctx) {
	case auth.StateUnlocked:
		c.io.Println("Already logged in.")
		return nil
	case auth.StateUninitialized, auth.StateSetup:
		return ErrNotConfigured
	}

	code, ok, err := c.codes.Resolve()
	if err != nil {
		return err
	}
	if ok {
		if _, err := c.authService.Login(ctx, code); err != nil {
			return err
		}
		c.io.Println("✓ Login successful!")
		return nil
	}

	for {
		code, err := c.io.ReadPassword("Access code: ")
		if err != nil {
			return fmt.Errorf("failed to read access code: %w", err)
		}
		if code == "" {
			return ErrLoginCancelled
		}

		_, err = c.authService.Login(ctx, code)
		if err == nil {
			c.io.Println("✓ Login successful!")
			return nil
		}
		if !errors.Is(err, auth.ErrIncorrectCode) {
			return err
		}

		c.io.Println("Incorrect access code. Try again or press Enter to cancel.")
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.authService.Logout(ctx)
	c.io.Println("✓ Logged out. Data stays on this device.")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	state := c.authService.CurrentState(ctx)
	c.io.Printf("Access gate: %s\n", state)

	switch state {
	case auth.StateUninitialized, auth.StateSetup:
		c.io.Println()
		c.io.Println("Run 'carenest setup' to create an access code.")
	case auth.StateLocked:
		c.io.Println()
		c.io.Println("Run 'carenest login' to unlock.")
	case auth.StateUnlocked:
		c.io.Printf("Profiles:    %d\n", len(c.dataService.ListProfiles(ctx)))
		if orphans, err := c.dataService.FindOrphans(ctx); err == nil && len(orphans) > 0 {
			c.io.Printf("⚠️  %d record(s) belong to deleted profiles. Run 'carenest orphans'.\n", len(orphans))
		}
	}

	return nil
}

func (c *Cli) runChangeCode(ctx context.Context) error {
	c.io.Println("=== Change Access Code ===")
	c.io.Println()

	current, err := c.readCode("Current access code: ")
	if err != nil {
		return err
	}
	next, err := c.io.ReadPassword("New access code (min 4 characters): ")
	if err != nil {
		return fmt.Errorf("failed to read new access code: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm new access code: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if err := c.authService.ChangeCode(ctx, current, next, confirm); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Access code changed.")
	return nil
}

// resetConfirmation must be typed exactly to erase everything
const resetConfirmation = "RESET"

func (c *Cli) runReset(ctx context.Context) error {
	c.io.Println("=== Reset ===")
	c.io.Println()
	c.io.Println("This permanently deletes the access code, all profiles, logs,")
	c.io.Println("medications, appointments and emergency info on this device.")
	c.io.Println()

	answer, err := c.io.ReadInput(fmt.Sprintf("Type %s to confirm: ", resetConfirmation))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if answer != resetConfirmation {
		c.io.Println("Reset cancelled.")
		return nil
	}

	if err := c.authService.Reset(ctx); err != nil {
		return err
	}

	c.io.Println("✓ All data erased. Run 'carenest setup' to start again.")
	return nil
}

func (c *Cli) runPrivacy() error {
	c.io.Println(privacyText)
	return nil
}
