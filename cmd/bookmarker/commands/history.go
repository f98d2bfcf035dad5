package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/statuslog"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int  `short:"n" help:"Number of transitions to show" default:"20"`
	JSON  bool `help:"Print transitions as JSON"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if cfg.StatusLog.Path == "" {
		return errors.ConfigError("statuslog.path is not configured; set it and run 'bookmarker watch' to record transitions").
			WithContext("field", "statuslog.path").
			UserAction().
			Build()
	}

	store, err := statuslog.Open(cfg.StatusLog.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	recent, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}

	if h.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recent)
	}
	if len(recent) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "No transitions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "AT\tSTATE\tSERVICE\tDETAIL")
	for _, t := range recent {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.At.Format(time.RFC3339), t.State(), t.Service, t.Detail)
	}
	return tw.Flush()
}
