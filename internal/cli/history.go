package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permsample/pkg/history"
	"github.com/matzehuels/permsample/pkg/sched"
)

// historyCommand creates the run history command.
func (c *CLI) historyCommand() *cobra.Command {
	var mongoURI string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past sampling runs",
	}
	cmd.PersistentFlags().StringVar(&mongoURI, "mongo", "", "MongoDB URI of a shared run history")

	cmd.AddCommand(c.historyListCommand(&mongoURI))
	cmd.AddCommand(c.historyShowCommand(&mongoURI))
	cmd.AddCommand(c.historyPathCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand(mongoURI *string) *cobra.Command {
	var (
		limit    int
		instance string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := history.ListOptions{Limit: limit}
			if instance != "" {
				inst, err := sched.LoadFile(instance)
				if err != nil {
					return err
				}
				if opts.InstanceHash, err = instanceHash(inst); err != nil {
					return fmt.Errorf("hash instance: %w", err)
				}
			}

			store, err := newHistory(ctx, *mongoURI)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			records, err := store.List(ctx, opts)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No runs recorded")
				return nil
			}
			for _, r := range records {
				printRecordLine(r)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "maximum number of runs")
	cmd.Flags().StringVar(&instance, "instance", "", "only runs of this instance file")
	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := newHistory(ctx, *mongoURI)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			r, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			printKeyValue("Run", r.ID)
			printKeyValue("Time", r.CreatedAt.Local().Format(time.DateTime))
			printKeyValue("Instance", r.Instance)
			printKeyValue("Hash", r.InstanceHash)
			printKeyValue("Algorithm", r.Algorithm)
			printKeyValue("Heuristics", fmt.Sprint(r.Heuristics))
			printKeyValue("Seed", strconv.FormatUint(r.Seed, 10))
			printKeyValue("Workers", strconv.Itoa(r.Workers))
			if r.Version != "" {
				printKeyValue("Version", r.Version)
			}
			printKeyValue("Cost", strconv.FormatFloat(r.Cost, 'f', -1, 64))
			printKeyValue("Sequence", formatSequence(r.Solution, len(r.Solution)))
			if r.Stopped != "" {
				printKeyValue("Stopped", r.Stopped)
			}
			printRunStats(r.Runs, r.Elapsed, false, r.Optimal)
			return nil
		},
	}
}

// historyPathCommand creates the "history path" subcommand.
func (c *CLI) historyPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the history directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := historyDir()
			if err != nil {
				return fmt.Errorf("get history dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// printRecordLine prints a one-line summary of r.
func printRecordLine(r *history.Record) {
	fmt.Println(StyleHighlight.Render(shortID(r.ID)) + " " +
		StyleDim.Render(r.CreatedAt.Local().Format(time.DateTime)) + " " +
		StyleValue.Render(r.Instance) + " " +
		StyleDim.Render(r.Algorithm) + " " +
		StyleNumber.Render(strconv.FormatFloat(r.Cost, 'f', -1, 64)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
