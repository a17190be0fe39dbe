package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permsample/pkg/cache"
	"github.com/matzehuels/permsample/pkg/sched"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the best-solution cache",
	}

	cmd.AddCommand(c.cacheShowCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheShowCommand creates the "cache show" subcommand.
func (c *CLI) cacheShowCommand() *cobra.Command {
	var redisURL string
	cmd := &cobra.Command{
		Use:   "show <instance.toml>",
		Short: "Print the cached best sequence of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inst, err := sched.LoadFile(args[0])
			if err != nil {
				return err
			}
			hash, err := instanceHash(inst)
			if err != nil {
				return fmt.Errorf("hash instance: %w", err)
			}
			store, err := newCache(ctx, false, redisURL)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			best, ok, err := cache.LoadBest(ctx, store, newKeyer(redisURL).BestKey(hash, sched.Objective))
			if err != nil {
				return err
			}
			if !ok {
				printInfo("No cached sequence for %s", inst.Name)
				return nil
			}
			printKeyValue("Instance", inst.Name)
			printKeyValue("Cost", strconv.FormatFloat(best.Cost, 'f', -1, 64))
			printKeyValue("Algorithm", best.Algorithm)
			printKeyValue("Sequence", formatSequence(best.Solution, 24))
			printKeyValue("Updated", best.UpdatedAt.Local().Format(time.DateTime))
			if best.RunID != "" {
				printKeyValue("Run", best.RunID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL of a shared best-solution cache")
	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached best sequences",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
