package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"xpost/internal/extract"
	"xpost/internal/history"
	"xpost/internal/output"
)

// errInterrupted marks user-initiated cancellation of the batch.
var errInterrupted = errors.New("operation cancelled")

// fetchRun is the default command: xpost [url...]
func fetchRun(cmd *cobra.Command, args []string) error {
	urls, err := gatherURLs(args)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs provided; pass them as arguments or use --stdin")
	}

	if flagLimit > 0 && len(urls) > flagLimit {
		urls = urls[:flagLimit]
		infof("Processing limited to %d URLs", flagLimit)
	}

	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	w, err := output.New(format, flagOutput)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ext := newExtractor()

	infof("Processing %d URLs...", len(urls))
	for i, url := range urls {
		if ctx.Err() != nil {
			break
		}
		infof("[%d/%d] Processing: %s", i+1, len(urls), url)

		rec, attempts, err := ext.Extract(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			// The failing URL is skipped; the batch continues.
			log.Printf("Error with URL %s: %v", url, err)
			continue
		}

		for _, a := range attempts {
			debugf("strategy %s declined: %v", a.Strategy, a.Err)
		}

		if err := w.Write(rec); err != nil {
			if closeErr := w.Close(); closeErr != nil {
				log.Printf("Closing output failed: %v", closeErr)
			}
			return err
		}

		if cfg.History {
			if err := history.Save(history.FromRecord(rec)); err != nil {
				debugf("saving history failed: %v", err)
			}
		}
	}

	if ctx.Err() != nil {
		// An interrupted batch writes nothing further: buffered JSON is
		// dropped rather than flushed as a partial document.
		if err := w.Discard(); err != nil {
			log.Printf("Closing output failed: %v", err)
		}
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user.")
		}
		return errInterrupted
	}

	closeErr := w.Close()
	infof("Completed processing %d of %d URLs", w.Count(), len(urls))
	if flagOutput != "" && w.Count() > 0 {
		infof("Results saved to %s", flagOutput)
	}
	if closeErr != nil {
		return closeErr
	}
	if w.Count() == 0 {
		return fmt.Errorf("no records produced from %d URLs", len(urls))
	}
	return nil
}

// gatherURLs collects URLs from stdin (when --stdin) and the argument list,
// in that order. Stdin lines that are not http(s) URLs are silently dropped.
func gatherURLs(args []string) ([]string, error) {
	var urls []string

	if flagStdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
				urls = append(urls, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		infof("Loaded %d URLs from stdin", len(urls))
	}

	return append(urls, args...), nil
}

// newExtractor builds the extractor from the loaded configuration.
func newExtractor() *extract.Extractor {
	return extract.New(extract.Config{
		OEmbedBase: cfg.OEmbedBase,
		EmbedBase:  cfg.EmbedBase,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout(),
	})
}
