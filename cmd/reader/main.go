package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"newslens/app/client"
	"newslens/app/loader"
	"newslens/app/prefs"
	"newslens/app/state"
	"newslens/app/translate"
	"newslens/app/tui"
)

type options struct {
	ServerURL string `long:"server" env:"NEWSLENS_SERVER" default:"http://localhost:8080" description:"NewsLens server URL"`
	PrefsPath string `long:"prefs" env:"NEWSLENS_PREFS" description:"Path to the preferences file (defaults to the user config directory)"`
}

func main() {
	// Optional .env file for local development.
	_ = godotenv.Load()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Failed to parse options: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI; drop log output.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	prefsStore, err := prefs.Open(opts.PrefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open preferences: %v\n", err)
		os.Exit(1)
	}

	store := state.NewStore(prefsStore.Lang(), prefsStore.Theme())
	apiClient := client.New(opts.ServerURL)
	batcher := translate.NewBatcher(apiClient)
	ldr := loader.New(apiClient, store, batcher)

	model := tui.NewModel(store, prefsStore, apiClient, ldr)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
