package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/editor"
	"github.com/oneconcern/foldersort/pkg/model"
)

var planMoveCmd = &cobra.Command{
	Use:     "mv PLAN FILE DESTINATION",
	Short:   "Move a file of a plan to another category",
	Example: `foldersort plan mv plan.json invoice.pdf Documents/Taxes`,
	Aliases: []string{"move"},
	Args:    cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		dest := model.SplitPath(args[2])
		if _, ok := editPlan(args[0], func(ed *editor.Editor) error {
			return ed.MoveFile(args[1], dest)
		}); ok {
			logStdOut("Moved %s to %s\n", args[1], model.JoinPath(dest))
		}
	},
}

func init() {
	planCmd.AddCommand(planMoveCmd)
}
