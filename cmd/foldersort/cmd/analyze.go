package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze DIR",
	Short: "Propose a plan organizing the files of a directory",
	Long: `Classify the files of a directory, and write the resulting plan.

Files are sent to the classifier in batches. Hidden files, and the files matched by the
patterns of a .foldersortignore file in the directory, are left out.

The plan is written to .foldersort/plan.json in the directory, unless --plan says otherwise.
No file is moved: use "foldersort apply" for that.`,
	Example: `foldersort analyze ~/Downloads
foldersort analyze ~/Downloads --classifier ollama --model gemma3 --instructions "group photos by year"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := withInterrupt()
		defer stop()

		s, ok := analyze(ctx, args[0])
		if !ok {
			return
		}
		path := planPath(s.SourceDir)
		if err := savePlan(path, s.Tree); err != nil {
			wrapFatalln("write plan", err)
			return
		}
		printTree(out, s.Tree)
		logStdOut("\n%s\nPlan written to %s\n", s.Summary(), path)
	},
}

// analyze opens a session on a directory and classifies its files.
//
// An interrupted analysis keeps the partial plan.
func analyze(ctx context.Context, dir string) (*session.Session, bool) {
	s, err := session.New(appFs, dir,
		session.Logger(logger),
		session.BatchSize(foldersortFlags.classifier.batchSize),
	)
	if err != nil {
		wrapFatalln("cannot organize "+dir, err)
		return nil, false
	}
	classifier, err := newClassifier(ctx)
	if err != nil {
		wrapFatalln("cannot set up classifier", err)
		return nil, false
	}

	_, err = s.Analyze(ctx, classifier, foldersortFlags.classifier.instructions)
	switch {
	case errors.Is(err, context.Canceled):
		_, _ = warnColor.Fprintln(out, "Analysis interrupted: the plan is partial")
	case err != nil:
		wrapFatalln("analysis failed", err)
		return nil, false
	}
	for _, diagnostic := range s.Diagnostics {
		_, _ = warnColor.Fprintln(out, diagnostic)
	}
	if unclassified := s.Unclassified(); len(unclassified) > 0 {
		_, _ = warnColor.Fprintf(out, "%d file(s) not classified\n", len(unclassified))
	}
	return s, true
}

func init() {
	addClassifierFlags(analyzeCmd)
	addPlanFileFlag(analyzeCmd)
	addStateDirFlag(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}
