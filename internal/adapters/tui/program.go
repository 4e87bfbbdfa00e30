package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/countdown/internal/services"
)

// RunOptions configures Run.
type RunOptions struct {
	Options

	// LogFile receives diagnostics. Empty discards them, since the TUI
	// owns the terminal.
	LogFile string
}

// Run starts the countdown interface and blocks until the user quits or
// ctx is cancelled. The widget is created here and closed on return.
// Ticks come from tea.Tick, so every widget call runs on the program's
// event loop.
func Run(ctx context.Context, opts RunOptions) error {
	logger := log.New(io.Discard, "", 0)
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "countdown")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	ticks := NewTeaTicker()
	display := NewAltScreen(os.Stdout)
	widget := services.NewWidget(ticks, display, logger)
	defer widget.Close()

	model := NewModel(widget, display, ticks, opts.Options)
	program := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithFilter(display.Filter),
	)

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
