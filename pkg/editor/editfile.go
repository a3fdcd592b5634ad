package editor

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/foldersort/pkg/model"
	"github.com/oneconcern/foldersort/pkg/repair"
)

// Launcher opens a file for manual editing and returns once the user is done
type Launcher func(ctx context.Context, path string) error

// DefaultEditorCommand returns the editor command line from $VISUAL or $EDITOR,
// falling back to nano, or notepad on windows
func DefaultEditorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if cmd := strings.TrimSpace(os.Getenv(env)); cmd != "" {
			return cmd
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "nano"
}

// ExternalEditor runs a command line on the edited file, attached to the terminal.
//
// An empty command line uses DefaultEditorCommand.
func ExternalEditor(command string) Launcher {
	return func(ctx context.Context, path string) error {
		args := strings.Fields(command)
		if len(args) == 0 {
			args = strings.Fields(DefaultEditorCommand())
		}
		cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...) // #nosec
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
}

// EditFile lets the user edit the tree as a standalone JSON document.
//
// The tree is written to path, the launcher is run, then the document is reloaded
// without any repair. Only a valid document in which every filename appears once is
// accepted: otherwise an *InvalidEditError is returned and the tree is retained.
func (e *Editor) EditFile(ctx context.Context, path string, launch Launcher) error {
	const op = "edit"

	data, err := model.Marshal(e.tree)
	if err != nil {
		return err
	}
	if err = afero.WriteFile(e.fs, path, data, 0600); err != nil {
		return err
	}

	if err = launch(ctx, path); err != nil {
		return ErrEditorFailed.WrapWithLog(e.l, err, zap.String("file", path))
	}

	data, err = afero.ReadFile(e.fs, path)
	if err != nil {
		return err
	}
	edited, err := repair.Strict(data)
	if err != nil {
		return invalid(op, nil, err)
	}
	if dup := firstDuplicate(edited); dup != "" {
		return invalid(op, nil, ErrDuplicateName.Wrapf("file %q is listed more than once", dup))
	}

	if err = e.Replace(edited); err != nil {
		return invalid(op, nil, err)
	}
	e.l.Info("structure edited", zap.String("file", path), zap.Int("files", model.Count(e.tree)))
	return nil
}

func firstDuplicate(tree model.Category) string {
	seen := make(map[string]struct{})
	for _, name := range model.Filenames(tree) {
		if _, dup := seen[name]; dup {
			return name
		}
		seen[name] = struct{}{}
	}
	return ""
}
