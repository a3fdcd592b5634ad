package cmd

import (
	"github.com/spf13/cobra"
)

var planShowCmd = &cobra.Command{
	Use:   "show PLAN",
	Short: "Display a plan",
	Long: `Display a plan as a tree of folders and files.

With --table, every folder and file is listed with an ID and the ID of its parent folder.`,
	Aliases: []string{"get"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tree, err := loadPlan(args[0])
		if err != nil {
			wrapFatalln("cannot load plan", err)
			return
		}
		switch {
		case foldersortFlags.plan.yaml:
			if err = printYAML(out, tree); err != nil {
				wrapFatalln("serialize plan to yaml", err)
				return
			}
		case foldersortFlags.plan.table:
			printTable(out, tree)
		default:
			printTree(out, tree)
		}
	},
}

func init() {
	addTableFlag(planShowCmd)
	addYAMLFlag(planShowCmd)

	planCmd.AddCommand(planShowCmd)
}
