package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/sched"
)

// generateCommand creates the generate command for random instances.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output string
		seed   uint64
		name   string
	)
	opts := sched.DefaultGenerateOptions()

	cmd := &cobra.Command{
		Use:   "generate <jobs>",
		Short: "Write a random weighted tardiness instance",
		Long: `Write a random single-machine weighted tardiness instance as TOML.

Processing times are drawn from [1,100] and weights from [1,10]. Due dates are
spread around (1 - tau) times the total processing time, over a window of range
times the total. The same seed always produces the same instance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid job count %q", args[0])
			}
			return runGenerate(n, seed, name, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&name, "name", "", "instance name (default: wt-<jobs>-<seed>)")
	cmd.Flags().Float64Var(&opts.Tau, "tau", opts.Tau, "tardiness factor in [0,1]")
	cmd.Flags().Float64Var(&opts.Range, "range", opts.Range, "due date range factor in [0,1]")
	cmd.Flags().IntVar(&opts.MaxSetup, "max-setup", 0, "add sequence-dependent setups up to this value")

	return cmd
}

func runGenerate(n int, seed uint64, name string, opts sched.GenerateOptions, output string) error {
	inst, err := sched.Generate(n, seed, opts)
	if err != nil {
		return err
	}
	if name != "" {
		inst.Name = name
	}

	if output == "" {
		return inst.Encode(os.Stdout)
	}
	data, err := inst.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Generated %d jobs", n)
	printFile(output)
	printNewline()
	printNextStep("Sample", appName+" sample "+output)
	return nil
}
