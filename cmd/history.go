package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"xpost/internal/history"
	"xpost/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previously fetched posts",
	RunE:  historyRun,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the fetch history",
	RunE:  historyClearRun,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

func historyRun(cmd *cobra.Command, args []string) error {
	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No fetch history.")
		return nil
	}

	items := history.FormatForDisplay(entries)
	idx, err := ui.Select("History", items)
	if errors.Is(err, ui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	selected := entries[idx]
	debugf("re-fetching: %s (tweet %s)", selected.URL, selected.TweetID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, attempts, err := newExtractor().Extract(ctx, selected.URL)
	if err != nil {
		if ctx.Err() != nil {
			return errInterrupted
		}
		return fmt.Errorf("re-fetching %s: %w", selected.URL, err)
	}
	for _, a := range attempts {
		debugf("strategy %s declined: %v", a.Strategy, a.Err)
	}

	if cfg.History {
		if err := history.Save(history.FromRecord(rec)); err != nil {
			debugf("saving history failed: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func historyClearRun(cmd *cobra.Command, args []string) error {
	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No fetch history.")
		return nil
	}

	ok, err := ui.Confirm(fmt.Sprintf("Delete %d history entries?", len(entries)))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := history.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Println("History cleared.")
	return nil
}
