package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/editor"
	"github.com/oneconcern/foldersort/pkg/model"
)

var planDeleteCmd = &cobra.Command{
	Use:   "delete PLAN PATH",
	Short: "Delete a category of a plan",
	Long: `Delete a category of a plan. Its files are not lost: they are released to the
top-level "Others" category.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		path := model.SplitPath(args[1])
		if _, ok := editPlan(args[0], func(ed *editor.Editor) error {
			return ed.Delete(path)
		}); ok {
			logStdOut("Deleted %s\n", model.JoinPath(path))
		}
	},
}

func init() {
	planCmd.AddCommand(planDeleteCmd)
}
