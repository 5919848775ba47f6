// Command waitlist is a terminal client for the Turn2Law waitlist. It runs
// the same form controller as the web front-end against the signup API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"turn2law_web/config"
	"turn2law_web/services/i18n"
	"turn2law_web/services/waitlist"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Load()

	flagSet := pflag.NewFlagSet("waitlist", pflag.ContinueOnError)
	apiURL := flagSet.String("api-url", cfg.SignupAPIBaseURL, "signup API base URL (default from SIGNUP_API_BASE_URL)")
	timeout := flagSet.Duration("timeout", cfg.SignupTimeout, "timeout for the signup request")
	lang := flagSet.String("lang", i18n.DefaultLang, "interface language")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if err := i18n.Load(); err != nil {
		return err
	}
	if !i18n.IsSupported(*lang) {
		return fmt.Errorf("unsupported language %q (available: %v)", *lang, i18n.Languages())
	}

	client, err := waitlist.NewClient(*apiURL, waitlist.WithTimeout(*timeout))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program := tea.NewProgram(newModel(ctx, waitlist.NewForm(client), *lang))
	_, err = program.Run()
	return err
}
