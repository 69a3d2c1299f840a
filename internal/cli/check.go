package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/romandfa"
	"github.com/aretw0/romandfa/internal/presentation/tui"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/muesli/termenv"
)

// Output formats accepted by RunCheck.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// CheckOptions configures a check session.
type CheckOptions struct {
	// Inputs are checked in order. When empty, lines are read from In.
	Inputs []string
	In     io.Reader
	Out    io.Writer
	Format string
	// Trace prints the state path under each text verdict.
	Trace bool
	// Prompt writes "> " before each line read from In.
	Prompt bool
	// Profile colors text output. The zero value is termenv.TrueColor; use termenv.Ascii for plain text.
	Profile termenv.Profile
	// Render turns the markdown report into terminal output. Nil prints raw markdown.
	Render func(string) (string, error)
}

// RunCheck validates every input and writes one verdict per input.
// It returns the number of rejected inputs.
func RunCheck(ctx context.Context, engine *romandfa.Engine, opts CheckOptions) (int, error) {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	var emit func(*domain.Verdict) error
	var collected []*domain.Verdict

	switch opts.Format {
	case FormatText:
		emit = func(v *domain.Verdict) error {
			_, err := fmt.Fprintln(opts.Out, tui.FormatVerdict(opts.Profile, v, opts.Trace))
			return err
		}
	case FormatJSON:
		enc := json.NewEncoder(opts.Out)
		emit = func(v *domain.Verdict) error { return enc.Encode(v) }
	case FormatMarkdown:
		emit = func(v *domain.Verdict) error {
			collected = append(collected, v)
			return nil
		}
	default:
		return 0, fmt.Errorf("unknown format %q (want text, json or markdown)", opts.Format)
	}

	rejected := 0
	check := func(input string) error {
		rec, err := engine.Submit(ctx, input)
		if err != nil {
			return err
		}
		if !rec.Verdict.Accepted {
			rejected++
		}
		return emit(rec.Verdict)
	}

	if len(opts.Inputs) > 0 {
		for _, in := range opts.Inputs {
			if err := check(in); err != nil {
				return rejected, err
			}
		}
	} else if err := scanInputs(ctx, opts, check); err != nil {
		return rejected, err
	}

	if opts.Format == FormatMarkdown {
		if err := writeReport(opts, collected); err != nil {
			return rejected, err
		}
	}
	return rejected, nil
}

// scanInputs feeds each non-blank line of opts.In to check until EOF or cancellation.
func scanInputs(ctx context.Context, opts CheckOptions, check func(string) error) error {
	if opts.In == nil {
		return nil
	}
	scanner := bufio.NewScanner(opts.In)
	for {
		if opts.Prompt {
			fmt.Fprint(opts.Out, "> ")
		}
		if !scanner.Scan() {
			if opts.Prompt {
				fmt.Fprintln(opts.Out)
			}
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := check(line); err != nil {
			return err
		}
	}
}

func writeReport(opts CheckOptions, verdicts []*domain.Verdict) error {
	if opts.Render == nil {
		_, err := io.WriteString(opts.Out, tui.ReportMarkdown(verdicts))
		return err
	}
	out, err := tui.RenderReport(opts.Render, verdicts)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(opts.Out, out)
	return err
}
