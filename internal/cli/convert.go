package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/studiowebux/resto/internal/converter"
	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/types"
)

// CurlOptions contains the flags of `resto curl`.
type CurlOptions struct {
	Command       string // empty reads the command from Stdin
	Format        string // http, json, yaml or curl
	ImportHeaders bool   // keep credential headers instead of masking them
	Execute       bool   // send the request instead of printing it
	Output        SendOptions
}

// ParseCurl reads the curl command from opts or Stdin and parses it.
func (r *Runner) ParseCurl(opts CurlOptions) (*types.HttpRequest, error) {
	text := opts.Command
	if strings.TrimSpace(text) == "" {
		if r.Stdin == nil {
			return nil, fmt.Errorf("no cURL command provided (pipe it or provide as argument)")
		}
		var err error
		if text, err = converter.ReadCurl(r.Stdin); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no cURL command provided (pipe it or provide as argument)")
	}
	req, err := converter.ParseCurl(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cURL command: %w", err)
	}
	log.Debug(log.CatCurl, "parsed curl", "method", req.Method, "url", req.URL, "headers", len(req.Headers))
	return req, nil
}

// Curl converts a curl command, or sends it when opts.Execute is set.
func (r *Runner) Curl(ctx context.Context, opts CurlOptions) error {
	req, err := r.ParseCurl(opts)
	if err != nil {
		return err
	}
	if opts.Execute {
		return r.Execute(ctx, req, opts.Output)
	}

	out, err := ConvertRequest(req, opts.Format, opts.ImportHeaders)
	if err != nil {
		return err
	}
	fmt.Fprint(r.Stdout, out)
	return nil
}

// ConvertRequest renders req in the given format, masking credential headers
// unless keepSensitive is set.
func ConvertRequest(req *types.HttpRequest, format string, keepSensitive bool) (string, error) {
	out := req.Clone()
	if !keepSensitive {
		converter.FilterSensitiveHeaders(out)
	}
	return converter.Render(out, converter.Format(strings.ToLower(format)))
}
