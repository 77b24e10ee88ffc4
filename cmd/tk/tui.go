package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/timekeeper-tui/internal/app"
	"github.com/j-veylop/timekeeper-tui/internal/config"
	"github.com/j-veylop/timekeeper-tui/internal/logger"
	"github.com/j-veylop/timekeeper-tui/internal/services"
	"github.com/j-veylop/timekeeper-tui/internal/ui/tabs/history"
	"github.com/j-veylop/timekeeper-tui/internal/ui/tabs/info"
	"github.com/j-veylop/timekeeper-tui/internal/ui/tabs/tracker"
)

// runTUI runs the interactive tracker until the user quits.
func runTUI(cfg *config.Config, opts ...services.Option) error {
	if cwd, err := os.Getwd(); err == nil {
		opts = append(opts, services.WithContextLabel(cwd))
	}

	svcManager, err := services.NewManager(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Close flushes the open session, so it must run after the program ends.
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			logger.Error("error closing services", "error", closeErr)
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		tracker.New(state),
		history.New(state, svcManager),
		info.New(state, svcManager),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	done := make(chan struct{})
	defer close(done)
	go forwardSignal(sigChan, done, func() { p.Send(tea.Quit()) })

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// forwardSignal calls quit on the first signal. It returns once that
// happens or done is closed.
func forwardSignal(sig <-chan os.Signal, done <-chan struct{}, quit func()) {
	select {
	case <-sig:
		quit()
	case <-done:
	}
}
