package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/oneconcern/foldersort/pkg/mover"
)

var undoCmd = &cobra.Command{
	Use:   "undo DIR",
	Short: "Revert the last run organizing a directory",
	Long: `Move the files of the last run back to their original location, and remove the
folders this run created when they are left empty.

Files which were since moved or deleted are skipped. Running undo again reverts the run
before, if any.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		journal, err := mover.LatestJournal(appFs, stateDir(dir))
		if errors.Is(err, mover.ErrNoJournal) {
			logStdOut("Nothing to undo\n")
			return
		}
		if err != nil {
			wrapFatalln("cannot read the journal", err)
			return
		}

		undone, err := (&mover.Executor{Fs: appFs, Journal: journal, Logger: logger}).Undo()
		_, _ = movedColor.Fprintf(out, "Restored %d file(s)\n", undone)
		if err != nil {
			for _, e := range multierr.Errors(err) {
				_, _ = errorColor.Fprintln(out, e)
			}
			wrapFatalln("undo incomplete", err)
			return
		}
	},
}

func init() {
	addStateDirFlag(undoCmd)

	rootCmd.AddCommand(undoCmd)
}
