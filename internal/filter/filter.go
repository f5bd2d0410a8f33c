// Package filter narrows response bodies. An expression is either JMESPath,
// evaluated against the body as JSON, or $(command), which runs command
// through sh with the body on stdin.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"

	"github.com/studiowebux/resto/internal/log"
)

// ShellTimeout bounds a $(command) filter.
const ShellTimeout = 30 * time.Second

// Kind says how an expression is evaluated.
type Kind int

const (
	KindNone Kind = iota
	KindJMESPath
	KindShell
)

func (k Kind) String() string {
	switch k {
	case KindJMESPath:
		return "jmespath"
	case KindShell:
		return "shell"
	default:
		return "none"
	}
}

// Parse classifies expr and returns the part to evaluate: the JMESPath
// source or the shell command inside $( ).
func Parse(expr string) (Kind, string) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return KindNone, ""
	case strings.HasPrefix(expr, "$(") && strings.HasSuffix(expr, ")") && len(expr) > 3:
		return KindShell, expr[2 : len(expr)-1]
	default:
		return KindJMESPath, expr
	}
}

// Validate reports a JMESPath syntax error without evaluating anything.
// Shell commands are not checked.
func Validate(expr string) error {
	kind, src := Parse(expr)
	if kind != KindJMESPath {
		return nil
	}
	if _, err := jmespath.Compile(src); err != nil {
		return fmt.Errorf("invalid JMESPath expression '%s': %w", src, err)
	}
	return nil
}

// Apply evaluates expr against body. An empty expr returns body unchanged.
func Apply(body, expr string) (string, error) {
	return ApplyContext(context.Background(), body, expr)
}

// ApplyContext is Apply with a context bounding shell commands.
func ApplyContext(ctx context.Context, body, expr string) (string, error) {
	kind, src := Parse(expr)
	switch kind {
	case KindShell:
		out, err := runShell(ctx, body, src)
		if err != nil {
			return "", fmt.Errorf("failed to execute query shell command: %w", err)
		}
		return out, nil
	case KindJMESPath:
		out, err := search(body, src)
		if err != nil {
			return "", fmt.Errorf("failed to apply query: %w", err)
		}
		log.Debug(log.CatUI, "response filtered", "expr", src, "bytes", len(out))
		return out, nil
	default:
		return body, nil
	}
}

// search runs a JMESPath expression and renders the result as indented JSON.
func search(body, expression string) (string, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}
	if result == nil {
		return "null", nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(out), nil
}

func runShell(ctx context.Context, body, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(body)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := err.Error()
		if stderr.Len() > 0 {
			msg = strings.TrimSpace(stderr.String())
		}
		return "", fmt.Errorf("command '%s' failed: %s", command, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
