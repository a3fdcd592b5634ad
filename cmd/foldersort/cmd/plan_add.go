package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/editor"
	"github.com/oneconcern/foldersort/pkg/model"
)

var planAddCmd = &cobra.Command{
	Use:   "add PLAN PARENT NAME",
	Short: "Add an empty category to a plan",
	Long: `Add an empty category under a parent category. Use "/" as the parent to add
a top-level category.`,
	Example: `foldersort plan add plan.json / Archives
foldersort plan add plan.json Documents Taxes`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		parent := model.SplitPath(args[1])
		if _, ok := editPlan(args[0], func(ed *editor.Editor) error {
			return ed.AddCategory(parent, args[2])
		}); ok {
			logStdOut("Added %s\n", model.JoinPath(append(parent, args[2])))
		}
	},
}

func init() {
	planCmd.AddCommand(planAddCmd)
}
