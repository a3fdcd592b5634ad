package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/model"
	"github.com/oneconcern/foldersort/pkg/mover"
	"github.com/oneconcern/foldersort/pkg/session"
)

var applyCmd = &cobra.Command{
	Use:   "apply DIR",
	Short: "Move the files of a directory according to a plan",
	Long: `Move every file of the plan into the folder of its category, inside the directory.

Folders are created as needed. Existing files are never overwritten: such conflicts are
reported, along with any other failure, and the remaining files are still moved.

Every move is journaled in the state directory, so that "foldersort undo" may reverse the run.`,
	Example: `foldersort apply ~/Downloads --dry-run
foldersort apply ~/Downloads --plan organized.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		tree, err := loadPlan(planPath(dir))
		if err != nil {
			wrapFatalln("cannot load plan", err)
			return
		}

		ctx, stop := withInterrupt()
		defer stop()

		apply(ctx, dir, tree)
	},
}

// apply moves the files of a directory into the folders of a plan, or reports the moves on a dry run
func apply(ctx context.Context, dir string, tree model.Category) {
	journal := mover.NewFileJournal(appFs, stateDir(dir))
	defer func() {
		_ = journal.Close()
	}()

	s, err := session.New(appFs, dir,
		session.Logger(logger),
		session.Tree(tree),
		session.Journal(journal),
	)
	if err != nil {
		wrapFatalln("cannot organize "+dir, err)
		return
	}

	var res *mover.Result
	if foldersortFlags.apply.dryRun {
		res, err = s.Plan(ctx)
	} else {
		res, err = s.Execute(ctx)
	}
	switch {
	case errors.Is(err, context.Canceled):
		_, _ = warnColor.Fprintln(out, "Interrupted: the remaining files were not moved")
	case err != nil:
		wrapFatalln("cannot organize "+dir, err)
		return
	}

	printResult(out, res, foldersortFlags.apply.dryRun, foldersortFlags.apply.maxErrors)
	if !foldersortFlags.apply.dryRun && res.Moved > 0 {
		logStdOut("Run \"foldersort undo %s\" to revert\n", dir)
	}
}

func init() {
	addPlanFileFlag(applyCmd)
	addDryRunFlag(applyCmd)
	addMaxErrorsFlag(applyCmd)
	addStateDirFlag(applyCmd)

	rootCmd.AddCommand(applyCmd)
}
