package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/carenest/internal/client/auth"
	"github.com/iudanet/carenest/internal/client/data"
	"github.com/iudanet/carenest/internal/client/iocli"
	"github.com/iudanet/carenest/internal/client/summary"
	"github.com/iudanet/carenest/internal/config"
)

// Cli executes one carenest command per process run
type Cli struct {
	io          iocli.IO
	authService auth.Service
	dataService data.Service
	summary     *summary.Builder
	codes       config.AccessCodeSources
}

func New(io iocli.IO, authService auth.Service, dataService data.Service, builder *summary.Builder, codes config.AccessCodeSources) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		dataService: dataService,
		summary:     builder,
		codes:       codes,
	}
}

// Run dispatches args[0] to the matching command
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.PrintUsage()
		return fmt.Errorf("%w: no command given", ErrMissingArgs)
	}

	command, rest := args[0], args[1:]

	switch command {
	case "help":
		c.PrintUsage()
		return nil
	case "privacy":
		return c.runPrivacy()
	case "setup":
		return c.runSetup(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "reset":
		return c.runReset(ctx)
	}

	handlers := map[string]func(context.Context, []string) error{
		"change-code": func(ctx context.Context, _ []string) error { return c.runChangeCode(ctx) },
		"profile":     c.runProfile,
		"log":         c.runLog,
		"med":         c.runMed,
		"appt":        c.runAppt,
		"emergency":   c.runEmergency,
		"summary":     c.runSummary,
		"orphans":     c.runOrphans,
	}

	handler, ok := handlers[command]
	if !ok {
		c.PrintUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	// Команды с данными работают только с открытой сессией
	if err := c.requireUnlocked(ctx); err != nil {
		return err
	}

	return handler(ctx, rest)
}

func (c *Cli) requireUnlocked(ctx context.Context) error {
	switch c.authService.CurrentState(ctx) {
	case auth.StateUnlocked:
		return nil
	case auth.StateUninitialized, auth.StateSetup:
		return ErrNotConfigured
	default:
		return ErrLocked
	}
}

// readCode returns the configured access code or prompts for it
func (c *Cli) readCode(prompt string) (string, error) {
	code, ok, err := c.codes.Resolve()
	if err != nil {
		return "", err
	}
	if ok {
		return code, nil
	}

	code, err = c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read access code: %w", err)
	}
	return code, nil
}

// promptDefault shows the current value and keeps it on empty input
func (c *Cli) promptDefault(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}

	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return current, nil
	}
	return value, nil
}

// promptInt reads an integer, keeping current on empty input
func (c *Cli) promptInt(label string, current int) (int, error) {
	value, err := c.promptDefault(label, strconv.Itoa(current))
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q", strings.ToLower(label), ErrInvalidNumber, value)
	}
	return n, nil
}

// confirm asks a yes/no question; only "y" and "yes" mean yes
func (c *Cli) confirm(question string) (bool, error) {
	answer, err := c.io.ReadInput(question + " (yes/no): ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y", nil
}

// need проверяет количество позиционных аргументов подкоманды
func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%w. Usage: %s", ErrMissingArgs, usage)
	}
	return nil
}
