package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/aretw0/romandfa"
)

// HistoryOptions configures the record listing.
type HistoryOptions struct {
	// Limit keeps only the most recent records. Zero lists everything.
	Limit int
	JSON  bool
}

// RunHistory lists persisted verdicts, oldest first.
func RunHistory(ctx context.Context, engine *romandfa.Engine, w io.Writer, opts HistoryOptions) error {
	ids, err := engine.Records(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	if opts.Limit > 0 && len(ids) > opts.Limit {
		ids = ids[len(ids)-opts.Limit:]
	}

	enc := json.NewEncoder(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if !opts.JSON {
		fmt.Fprintln(tw, "ID\tCREATED\tINPUT\tRESULT")
	}
	for _, id := range ids {
		rec, err := engine.Record(ctx, id)
		if err != nil {
			// Expired between List and Load.
			continue
		}
		if opts.JSON {
			if err := enc.Encode(rec); err != nil {
				return err
			}
			continue
		}
		result := strconv.Itoa(rec.Verdict.Value)
		if !rec.Verdict.Accepted {
			result = rec.Verdict.Rejection.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%q\t%s\n", rec.ID, rec.CreatedAt.Format(time.RFC3339), rec.Verdict.Input, result)
	}
	return tw.Flush()
}
