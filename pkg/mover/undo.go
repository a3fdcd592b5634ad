package mover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Undo reverses the moves recorded in a journal, using a nop logger
func Undo(fs afero.Fs, journal Journal) (int, error) {
	e := &Executor{Fs: fs, Journal: journal}
	return e.Undo()
}

// Undo reverses the moves recorded in the journal of the executor, newest first.
//
// Each destination which still exists is moved back to its source. Missing destinations
// are skipped silently: the file has been moved again or deleted since. Directories
// created by the run are removed once empty. The journal is cleared after the pass, so
// a run is undone once only. It returns the number of files moved back.
func (e *Executor) Undo() (int, error) {
	fs, l := e.fs(), e.logger()
	if e.Journal == nil {
		return 0, nil
	}

	var (
		undone int
		errs   error
	)
	records := e.Journal.Records()
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]

		if _, err := fs.Stat(rec.Destination); err != nil {
			if !os.IsNotExist(err) {
				errs = multierr.Append(errs, err)
			}
			l.Debug("undo skipped missing destination", zap.String("destination", rec.Destination))
			removeEmptyDirs(fs, rec.Dirs)
			continue
		}
		if _, err := fs.Stat(rec.Source); err == nil {
			errs = multierr.Append(errs, ErrDestinationExists.Wrapf("cannot restore %s", rec.Source))
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(rec.Source), 0755); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := fs.Rename(rec.Destination, rec.Source); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("cannot restore %s: %w", rec.Source, err))
			continue
		}
		undone++
		removeEmptyDirs(fs, rec.Dirs)
	}

	errs = multierr.Append(errs, e.Journal.Clear())

	l.Info("undo completed",
		zap.Int("undone", undone),
		zap.Int("records", len(records)),
		zap.Int("errors", len(multierr.Errors(errs))),
	)
	return undone, errs
}
