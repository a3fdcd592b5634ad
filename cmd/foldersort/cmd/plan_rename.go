package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/editor"
	"github.com/oneconcern/foldersort/pkg/model"
)

var planRenameCmd = &cobra.Command{
	Use:     "rename PLAN PATH NAME",
	Short:   "Rename a category of a plan",
	Example: `foldersort plan rename plan.json Documents/Reports "Annual reports"`,
	Args:    cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		path := model.SplitPath(args[1])
		if _, ok := editPlan(args[0], func(ed *editor.Editor) error {
			return ed.Rename(path, args[2])
		}); ok {
			logStdOut("Renamed %s to %s\n", model.JoinPath(path), args[2])
		}
	},
}

func init() {
	planCmd.AddCommand(planRenameCmd)
}
