// Package ui drives interactive picks through fzf. Items travel to fzf as
// plain stdin lines, each prefixed with its index so the choice maps back
// to the caller's slice no matter how fzf filters or reorders the view.
package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrCancelled reports that the user backed out of a pick.
var ErrCancelled = errors.New("cancelled")

// Select shows items in fzf and returns the index of the chosen one.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, errors.New("nothing to pick from")
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return -1, fmt.Errorf("interactive mode needs fzf on PATH: %w", err)
	}

	cmd := exec.Command(fzfPath,
		"--prompt="+prompt+"> ",
		"--height=40%",
		"--reverse",
		"--delimiter=\t",
		"--with-nth=2..", // index column stays hidden
		"--no-multi",
		"--cycle",
	)
	cmd.Stdin = strings.NewReader(renderItems(items))
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 130 {
			return -1, ErrCancelled
		}
		return -1, fmt.Errorf("running fzf: %w", err)
	}

	return parseSelection(string(out), len(items))
}

// Confirm puts a yes/no choice through fzf. Backing out counts as no.
func Confirm(prompt string) (bool, error) {
	idx, err := Select(prompt, []string{"Yes", "No"})
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}

func renderItems(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d\t%s\n", i, item)
	}
	return b.String()
}

// parseSelection recovers the original index from an fzf output line.
func parseSelection(out string, n int) (int, error) {
	line := strings.TrimSpace(out)
	field, _, _ := strings.Cut(line, "\t")
	idx, err := strconv.Atoi(field)
	if err != nil {
		return -1, fmt.Errorf("unexpected fzf output %q", line)
	}
	if idx < 0 || idx >= n {
		return -1, fmt.Errorf("selection %d out of range", idx)
	}
	return idx, nil
}
