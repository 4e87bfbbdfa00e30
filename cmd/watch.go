package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown/internal/adapters/scheduler"
	"github.com/xvierd/countdown/internal/domain"
	"github.com/xvierd/countdown/internal/services"
)

// errEmptyDuration is returned when the watch arguments parse to zero seconds.
var errEmptyDuration = errors.New("duration must be greater than zero")

var watchCmd = &cobra.Command{
	Use:   "watch MINUTES [SECONDS]",
	Short: "Run a countdown without the interface, printing each tick",
	Long: `Run a countdown in the foreground and print the remaining time once
per second. Interrupting with Ctrl+C stops the countdown and prints the
time it was rewound to.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes := args[0]
		seconds := ""
		if len(args) == 2 {
			seconds = args[1]
		}

		logger, closeLog, err := openLogger(logFile())
		if err != nil {
			return err
		}
		defer closeLog()

		return runWatch(setupSignalHandler(), cmd.OutOrStdout(), logger, minutes, seconds)
	},
}

// runWatch drives a widget on a scheduler loop until it expires or ctx is
// cancelled. All widget calls happen on the loop goroutine.
func runWatch(ctx context.Context, out io.Writer, logger services.Logger, minutes, seconds string) error {
	loop := scheduler.NewLoop()
	defer loop.Close()

	widget := services.NewWidget(scheduler.ForLoop(loop), nil, logger)

	expired := make(chan struct{})
	var once sync.Once

	var started bool
	loop.Do(func() {
		widget.SetUpdateCallback(func(v domain.View) {
			switch {
			case v.Expired:
				fmt.Fprintln(out, v.Remaining)
				once.Do(func() { close(expired) })
			case v.Phase == domain.PhaseRunning:
				fmt.Fprintln(out, v.Remaining)
			}
		})
		widget.SetInput(minutes, seconds)
		started = widget.Start()
	})
	if !started {
		loop.Do(widget.Close)
		return fmt.Errorf("failed to start countdown: %w", errEmptyDuration)
	}

	select {
	case <-expired:
		loop.Do(widget.Close)
		fmt.Fprintln(out, "Countdown complete")
	case <-ctx.Done():
		var rewound string
		loop.Do(func() {
			widget.Stop()
			rewound = widget.Snapshot().Remaining
			widget.Close()
		})
		fmt.Fprintf(out, "Stopped, rewound to %s\n", rewound)
	}
	return nil
}
