package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/regiongen/pkg/history"
	"github.com/matzehuels/regiongen/pkg/sink"
)

// historyCommand creates the run history command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and replay past runs",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyPickCommand())

	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := c.listRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No runs recorded yet")
				return nil
			}
			fmt.Println(runsTable(runs, time.Now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", history.DefaultLimit, "maximum number of runs")
	return cmd
}

func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			printRecord(rec)
			return nil
		},
	}
}

func (c *CLI) historyPickCommand() *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a past run interactively and generate it again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runs, err := c.listRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No runs recorded yet")
				return nil
			}

			final, err := tea.NewProgram(NewRunListModel(runs), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}
			rec := final.(RunListModel).Selected
			if rec == nil {
				return nil
			}

			out := outputSettings{dir: output, prefix: c.config.Output.Prefix}
			if out.dir == "" {
				out.dir = "."
			}
			if out.prefix == "" {
				out.prefix = sink.DefaultPrefix
			}
			printInfo("Regenerating run %s", shortID(rec.ID))
			return c.runGenerate(ctx, rec.Options, out)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", history.DefaultLimit, "maximum number of runs to offer")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: current directory)")
	return cmd
}

func (c *CLI) listRuns(ctx context.Context, limit int) ([]*history.Record, error) {
	prog := newProgress(loggerFromContext(ctx))
	store, err := c.newHistory(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runs, err := store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %d runs", len(runs)))
	return runs, nil
}

// printRecord prints every field of a run.
func printRecord(rec *history.Record) {
	o := rec.Options
	printKeyValue("ID", rec.ID)
	printKeyValue("Created", rec.CreatedAt.Local().Format(time.RFC1123))
	printKeyValue("Size", fmt.Sprintf("%dx%d", o.Width, o.Height))
	printKeyValue("Density", strconv.Itoa(o.Density))
	printKeyValue("Seed", strconv.FormatUint(o.Seed, 10))
	printKeyValue("Mode", o.Mode)
	if o.Clusters {
		printKeyValue("Cluster band", fmt.Sprintf("(%d, %d)", o.ClusterMin, o.ClusterMax))
		spine := strconv.Itoa(o.SpineDensity) + " per segment"
		if o.SolidSpine {
			spine = "solid"
		}
		printKeyValue("Spine", spine)
		printKeyValue("Clusters", strconv.Itoa(rec.Clusters))
		printKeyValue("Spine points", strconv.Itoa(rec.SpinePoints))
	}
	printKeyValue("Regions", strconv.Itoa(rec.Regions))
	printKeyValue("Formats", strings.Join(o.Formats, ", "))
	printKeyValue("Duration", rec.Duration.Round(time.Millisecond).String())
	if rec.Cached {
		printKeyValue("Cached", "yes")
	}
	for _, a := range rec.Artifacts {
		if _, err := os.Stat(a); err != nil {
			printWarning("%s (missing)", a)
			continue
		}
		printFile(a)
	}
}
