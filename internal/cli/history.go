package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/resto/internal/executor"
	"github.com/studiowebux/resto/internal/format"
	"github.com/studiowebux/resto/internal/history"
	"github.com/studiowebux/resto/internal/types"
)

const historyTimeFormat = "2006-01-02 15:04:05"

// HistoryOptions contains the flags of `resto history`.
type HistoryOptions struct {
	Limit  int
	Search string // fuzzy filter on "METHOD URL"
	Output string // text, json or yaml
}

// ListHistory prints stored entries, newest first.
func (r *Runner) ListHistory(store *history.Manager, opts HistoryOptions) error {
	entries, err := store.Load(opts.Limit)
	if err != nil {
		return err
	}
	entries = history.Search(entries, strings.TrimSpace(opts.Search))

	switch opts.Output {
	case OutputJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(r.Stdout, string(data))
	case OutputYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		fmt.Fprint(r.Stdout, string(data))
	case OutputText, "":
		if len(entries) == 0 {
			fmt.Fprintln(r.Stdout, "No history")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintln(r.Stdout, r.historyLine(e))
		}
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.Output)
	}
	return nil
}

func (r *Runner) historyLine(e types.HistoryEntry) string {
	status := "ERR"
	duration := "-"
	if e.Result != nil && !e.Result.Failed() {
		status = fmt.Sprintf("%d", e.Result.Status)
		duration = executor.FormatDuration(e.Result.Duration)
	}
	method := fmt.Sprintf("%-7s", e.Request.Method)
	if r.Color {
		method = lipgloss.NewStyle().Bold(true).Render(method)
		if e.Result != nil {
			status = lipgloss.NewStyle().Foreground(format.StatusColor(e.Result.Status)).Render(status)
		}
	}
	return fmt.Sprintf("%5d  %s  %s  %3s  %8s  %s",
		e.ID, e.Timestamp.Local().Format(historyTimeFormat), method, status, duration, e.Request.URL)
}

// ShowHistory prints one entry: the request line followed by its response.
func (r *Runner) ShowHistory(store *history.Manager, id int64, opts SendOptions) error {
	entry, err := store.Get(id)
	if err != nil {
		return err
	}
	fullURL, err := entry.Request.FullURL()
	if err != nil {
		fullURL = entry.Request.URL
	}

	outputFormat := opts.Output
	if outputFormat == "" {
		outputFormat = OutputText
	}
	if outputFormat == OutputText {
		fmt.Fprintf(r.Stdout, "%s %s\n", entry.Request.Method, fullURL)
	}
	out, err := FormatOutput(entry.Result, outputFormat, opts.Full, r.Color)
	if err != nil {
		return err
	}
	fmt.Fprint(r.Stdout, out)
	return nil
}

// Resend performs a stored request again as a new history entry.
func (r *Runner) Resend(ctx context.Context, entry types.HistoryEntry, opts SendOptions) error {
	req := entry.Request.Clone()
	req.ID = uuid.NewString()
	return r.Execute(ctx, req, opts)
}
