// Package cli implements resto's non-interactive commands: one-shot
// requests, curl conversion and history listing.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/resto/internal/config"
	"github.com/studiowebux/resto/internal/executor"
	"github.com/studiowebux/resto/internal/filter"
	"github.com/studiowebux/resto/internal/format"
	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/types"
)

// ErrRequestFailed is returned when the request did not complete or the
// server answered with a 4xx or 5xx status. main maps it to exit code 1.
var ErrRequestFailed = errors.New("request failed")

// Output formats accepted by SendOptions.Output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputBody = "body"
)

// Sender performs a request. *executor.Client satisfies it.
type Sender interface {
	Execute(ctx context.Context, req *types.HttpRequest) (*types.RequestResult, error)
}

// Recorder stores completed requests. *history.Manager satisfies it.
type Recorder interface {
	Save(req *types.HttpRequest, result *types.RequestResult) (int64, error)
	Trim(keep int) error
}

// SendOptions contains the flags of `resto send`.
type SendOptions struct {
	Method   string
	URL      string
	Headers  []string // "Key: Value"
	Query    []string // "key=value"
	Body     string   // "@-" reads the body from Stdin
	Output   string   // text, json, yaml or body; empty picks by terminal
	Filter   string   // JMESPath expression or $(shell command)
	Full     bool     // include response headers in text output
	SavePath string
}

// Runner holds the dependencies shared by the CLI commands.
type Runner struct {
	Client       Sender
	History      Recorder // nil disables recording
	HistoryLimit int
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Color        bool // style text output with ANSI colours
}

// NewRunner wires a Runner to the process streams.
func NewRunner(client Sender, hist Recorder, limit int) *Runner {
	return &Runner{
		Client:       client,
		History:      hist,
		HistoryLimit: limit,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Color:        IsTerminal(os.Stdout),
	}
}

// IsTerminal reports whether f is attached to a terminal rather than a pipe
// or file.
func IsTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// BuildRequest turns command-line options into a request.
func (r *Runner) BuildRequest(opts SendOptions) (*types.HttpRequest, error) {
	req := types.NewRequest()
	req.URL = strings.TrimSpace(opts.URL)
	if !req.IsValid() {
		return nil, fmt.Errorf("invalid URL %q: must start with http:// or https://", opts.URL)
	}

	if opts.Method != "" {
		m, err := types.ParseMethod(opts.Method)
		if err != nil {
			return nil, err
		}
		req.Method = m
	}

	for _, h := range opts.Headers {
		key, value, ok := strings.Cut(h, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Key: Value\"", h)
		}
		req.Headers[key] = strings.TrimSpace(value)
	}
	for _, q := range opts.Query {
		key, value, ok := strings.Cut(q, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q: expected key=value", q)
		}
		req.Query[key] = strings.TrimSpace(value)
	}

	body := opts.Body
	if body == "@-" {
		if r.Stdin == nil {
			return nil, fmt.Errorf("no stdin to read the body from")
		}
		data, err := io.ReadAll(r.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read body from stdin: %w", err)
		}
		body = string(data)
	}
	req.Body = body
	if body != "" && opts.Method == "" {
		req.Method = types.MethodPost
	}
	return req, nil
}

// Send builds and performs a one-shot request.
func (r *Runner) Send(ctx context.Context, opts SendOptions) error {
	if err := filter.Validate(opts.Filter); err != nil {
		return err
	}
	req, err := r.BuildRequest(opts)
	if err != nil {
		return err
	}
	return r.Execute(ctx, req, opts)
}

// Execute performs req, records it and prints the result. It returns
// ErrRequestFailed when the request failed or the status is 400 or above.
func (r *Runner) Execute(ctx context.Context, req *types.HttpRequest, opts SendOptions) error {
	log.Info(log.CatHTTP, "cli request", "method", req.Method, "url", req.URL)

	result, err := r.Client.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}

	if r.History != nil && !result.Failed() {
		if _, err := r.History.Save(req, result); err != nil {
			fmt.Fprintf(r.Stderr, "Warning: failed to save history: %v\n", err)
		} else if r.HistoryLimit > 0 {
			if err := r.History.Trim(r.HistoryLimit); err != nil {
				log.ErrorErr(log.CatDB, "failed to trim history", err)
			}
		}
	}

	if opts.Filter != "" && !result.Failed() {
		filtered, err := filter.Apply(result.Body, opts.Filter)
		if err != nil {
			fmt.Fprintf(r.Stderr, "Warning: filter error: %v\n", err)
		} else {
			result.Body = filtered
		}
	}

	outputFormat := opts.Output
	if outputFormat == "" {
		outputFormat = OutputBody
		if r.Color {
			outputFormat = OutputText
		}
	}

	output, err := FormatOutput(result, outputFormat, opts.Full, r.Color && opts.SavePath == "")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(output), config.FilePermissions); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		fmt.Fprintf(r.Stderr, "Response saved to %s\n", opts.SavePath)
	} else {
		fmt.Fprint(r.Stdout, output)
	}

	switch {
	case result.Failed():
		return fmt.Errorf("%w: %s", ErrRequestFailed, result.Error)
	case result.Status >= 400:
		return fmt.Errorf("%w: %d %s", ErrRequestFailed, result.Status, result.StatusText)
	}
	return nil
}

var (
	styleStatus = lipgloss.NewStyle().Bold(true)
	styleSubtle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// FormatOutput renders result in the given output format. color enables
// status colouring and syntax highlighting for the text format.
func FormatOutput(result *types.RequestResult, outputFormat string, full, color bool) (string, error) {
	switch outputFormat {
	case OutputJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case OutputYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case OutputBody:
		if result.Failed() {
			return "", nil
		}
		return withNewline(result.Body), nil

	case OutputText:
		return formatText(result, full, color), nil

	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, yaml or body)", outputFormat)
	}
}

func formatText(result *types.RequestResult, full, color bool) string {
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var sb strings.Builder
	if result.Failed() {
		sb.WriteString(paint(styleError, "Error: "+result.Error))
		sb.WriteString("\n")
		return sb.String()
	}

	status := fmt.Sprintf("%d %s", result.Status, result.StatusText)
	sb.WriteString(paint(styleStatus.Foreground(format.StatusColor(result.Status)), status))
	sb.WriteString("\n")
	sb.WriteString(paint(styleSubtle, fmt.Sprintf("Duration: %s | Size: %s",
		executor.FormatDuration(result.Duration), executor.FormatSize(result.ResponseSize))))
	sb.WriteString("\n")

	if full && len(result.Headers) > 0 {
		sb.WriteString("\nHeaders:\n")
		sb.WriteString(format.KeyValues(result.Headers))
		sb.WriteString("\n")
		if len(result.Cookies) > 0 {
			sb.WriteString("\nCookies:\n")
			sb.WriteString(strings.Join(result.Cookies, "\n"))
			sb.WriteString("\n")
		}
	}

	if result.Body != "" {
		body := format.Body(result)
		if color {
			body = format.Highlight(body, result.ContentType())
		}
		if full {
			sb.WriteString("\nBody:\n")
		} else {
			sb.WriteString("\n")
		}
		sb.WriteString(withNewline(body))
	}
	return sb.String()
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
