package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permsample/pkg/sched"
)

var heuristicSummaries = map[string]string{
	sched.NameEDD:    "earliest due date first",
	sched.NameSPT:    "shortest processing time first",
	sched.NameLPT:    "longest processing time first",
	sched.NameWSPT:   "highest weight per processing time first",
	sched.NameMST:    "least slack first",
	sched.NameATC:    "apparent tardiness cost (uses --k)",
	sched.NameCOVERT: "cost over time (uses --k)",
}

// heuristicsCommand creates the heuristics command listing valid --heuristic values.
func (c *CLI) heuristicsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "heuristics",
		Short: "List the dispatching heuristics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Heuristics"))
			for _, name := range sched.Names() {
				printKeyValue(name, heuristicSummaries[name])
			}
			return nil
		},
	}
}
