package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/editor"
	"github.com/oneconcern/foldersort/pkg/model"
)

// planCmd represents the plan related commands
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Commands to review and edit a plan",
	Long: `Commands to review and edit a plan before it is applied.

A plan is a JSON document: every key names a category, every value is either a nested
category or the list of the files it holds. The "_files_" key holds the files of a category
which belong to none of its subcategories.

Paths to categories are written with slashes, e.g. "Documents/Reports".`,
}

// used to patch over the external editor during test
var launchEditor = editor.ExternalEditor

// editPlan loads a plan, applies an edit and saves the plan back when the edit is accepted
func editPlan(path string, edit func(*editor.Editor) error) (model.Category, bool) {
	tree, err := loadPlan(path)
	if err != nil {
		wrapFatalln("cannot load plan", err)
		return nil, false
	}
	ed := editor.New(tree, editor.Logger(logger), editor.Fs(appFs))
	if err = edit(ed); err != nil {
		wrapFatalln("plan unchanged", err)
		return nil, false
	}
	if err = savePlan(path, ed.Tree()); err != nil {
		wrapFatalln("write plan", err)
		return nil, false
	}
	return ed.Tree(), true
}

func init() {
	rootCmd.AddCommand(planCmd)
}
