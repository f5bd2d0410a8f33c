package converter

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/resto/internal/types"
)

const redacted = "********"

var sensitiveHeaders = []string{
	"authorization",
	"cookie",
	"x-api-key",
	"api-key",
	"apikey",
	"x-auth-token",
	"auth-token",
	"proxy-authorization",
}

// FilterSensitiveHeaders masks credential-bearing headers in place.
func FilterSensitiveHeaders(req *types.HttpRequest) {
	for key := range req.Headers {
		lower := strings.ToLower(key)
		for _, sensitive := range sensitiveHeaders {
			if lower == sensitive {
				req.Headers[key] = redacted
				break
			}
		}
	}
}

// ToCurl renders req as a single-line curl command.
func ToCurl(req *types.HttpRequest) (string, error) {
	fullURL, err := req.FullURL()
	if err != nil {
		return "", err
	}

	parts := []string{"curl"}
	if req.Method != types.MethodGet && req.Method != "" {
		parts = append(parts, "-X", string(req.Method))
	}
	parts = append(parts, shellQuote(fullURL))
	for _, key := range types.SortedKeys(req.Headers) {
		parts = append(parts, "-H", shellQuote(key+": "+req.Headers[key]))
	}
	if req.HasBody() && req.Body != "" {
		parts = append(parts, "--data-raw", shellQuote(req.Body))
	}
	return strings.Join(parts, " "), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Format is an export format for Render.
type Format string

const (
	FormatHTTP Format = "http"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCurl Format = "curl"
)

// exportRequest leaves out the draft's identity fields.
type exportRequest struct {
	Method  types.HttpMethod  `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Query   map[string]string `json:"query,omitempty" yaml:"query,omitempty"`
	Body    string            `json:"body,omitempty" yaml:"body,omitempty"`
}

// Render serializes req in the given format.
func Render(req *types.HttpRequest, format Format) (string, error) {
	out := exportRequest{
		Method:  req.Method,
		URL:     req.URL,
		Headers: req.Headers,
		Query:   req.Query,
		Body:    req.Body,
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(out)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(data), nil
	case FormatCurl:
		s, err := ToCurl(req)
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	case FormatHTTP, "":
		return renderHTTP(req)
	default:
		return "", fmt.Errorf("unknown format %q (want http, json, yaml or curl)", format)
	}
}

func renderHTTP(req *types.HttpRequest) (string, error) {
	fullURL, err := req.FullURL()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", req.Method, fullURL)
	for _, key := range types.SortedKeys(req.Headers) {
		fmt.Fprintf(&sb, "%s: %s\n", key, req.Headers[key])
	}
	if req.Body != "" {
		sb.WriteString("\n")
		sb.WriteString(req.Body)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
