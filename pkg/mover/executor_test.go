package mover

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oneconcern/foldersort/pkg/model"
)

const sourceDir = "/data/inbox"

func makeSource(t testing.TB, fs afero.Fs, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(sourceDir, name), []byte("content of "+name), 0644))
	}
}

func exists(fs afero.Fs, parts ...string) bool {
	ok, _ := afero.Exists(fs, filepath.Join(append([]string{sourceDir}, parts...)...))
	return ok
}

func scenarioTree() model.Category {
	return model.Category{
		"Docs":   model.Category{"Reports": model.Files{"a.txt", "b.txt"}},
		"Images": model.Files{"c.png"},
	}
}

func TestExecute(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "a.txt", "b.txt", "c.png", "d.txt")
	journal := NewMemoryJournal()
	e := &Executor{Fs: fs, Journal: journal}

	res, err := e.Execute(context.Background(), scenarioTree(), sourceDir, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Moved)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.png"}, res.MovedFiles)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"d.txt"}, res.Unclassified)
	assert.Zero(t, res.InPlace)
	assert.Equal(t, int64(len("content of a.txt")*2+len("content of c.png")), res.Bytes)

	assert.True(t, exists(fs, "Docs", "Reports", "a.txt"))
	assert.True(t, exists(fs, "Docs", "Reports", "b.txt"))
	assert.True(t, exists(fs, "Images", "c.png"))
	assert.True(t, exists(fs, "d.txt"), "unclassified files are left untouched")
	assert.False(t, exists(fs, "a.txt"))

	records := journal.Records()
	require.Len(t, records, 3)
	assert.Equal(t, res.Log, records)
	assert.Equal(t, Record{
		Destination: filepath.Join(sourceDir, "Docs", "Reports", "a.txt"),
		Source:      filepath.Join(sourceDir, "a.txt"),
		Size:        int64(len("content of a.txt")),
		Time:        records[0].Time,
		Dirs:        []string{filepath.Join(sourceDir, "Docs"), filepath.Join(sourceDir, "Docs", "Reports")},
	}, records[0])
	assert.Empty(t, records[1].Dirs, "directories are created once")
	assert.Equal(t, []string{filepath.Join(sourceDir, "Images")}, records[2].Dirs)
}

func TestExecuteFilesKeyTargetsCategoryDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "root.txt", "d.txt", "r.pdf")
	tree := model.Category{
		model.FilesKey: model.Files{"root.txt"},
		"Docs": model.Category{
			model.FilesKey: model.Files{"d.txt"},
			"Reports":      model.Files{"r.pdf"},
		},
	}

	res, err := (&Executor{Fs: fs}).Execute(context.Background(), tree, sourceDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Moved)
	assert.Equal(t, 1, res.InPlace)
	assert.True(t, exists(fs, "root.txt"))
	assert.True(t, exists(fs, "Docs", "d.txt"))
	assert.True(t, exists(fs, "Docs", "Reports", "r.pdf"))
}

func TestExecutePerFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "a.txt", "b.txt", "taken.txt", "ok.txt")
	require.NoError(t, afero.WriteFile(fs, filepath.Join(sourceDir, "Docs", "taken.txt"), []byte("already here"), 0644))

	core, logs := observer.New(zap.WarnLevel)
	tree := model.Category{
		"Docs":   model.Files{"ghost.txt", "taken.txt", "ok.txt"},
		"..":     model.Files{"a.txt"},
		"Unsafe": model.Files{"../b.txt"},
	}
	res, err := (&Executor{Fs: fs, Logger: zap.New(core)}).Execute(context.Background(), tree, sourceDir, nil)
	require.NoError(t, err, "per-file failures never abort the run")

	assert.Equal(t, 1, res.Moved)
	assert.Equal(t, []string{"ok.txt"}, res.MovedFiles)
	require.Len(t, res.Errors, 4)
	assert.Contains(t, res.Errors[0], "a.txt")
	assert.Contains(t, res.Errors[1], "ghost.txt")
	assert.Contains(t, res.Errors[2], "taken.txt")
	assert.Contains(t, res.Errors[3], "../b.txt")
	assert.Equal(t, 4, logs.FilterMessage("cannot move file").Len())

	content, err := afero.ReadFile(fs, filepath.Join(sourceDir, "Docs", "taken.txt"))
	require.NoError(t, err)
	assert.Equal(t, "already here", string(content), "existing files are never overwritten")
	assert.True(t, exists(fs, "taken.txt"))
	assert.True(t, exists(fs, "a.txt"))
	assert.True(t, exists(fs, "b.txt"))
}

func TestExecuteOnlyMovesClassifiedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "a.txt", "b.txt", "c.png", "d.txt")

	classified := map[string]struct{}{"a.txt": {}, "c.png": {}}
	res, err := (&Executor{Fs: fs}).Execute(context.Background(), scenarioTree(), sourceDir, classified)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "c.png"}, res.MovedFiles)
	assert.Equal(t, []string{"b.txt", "d.txt"}, res.Unclassified)
	assert.True(t, exists(fs, "b.txt"))
}

func TestExecutePartitionsDirectory(t *testing.T) {
	names := []string{"a.txt", "b.txt", "c.png", "d.txt", "e.md", "f.go"}
	for _, tree := range []model.Category{
		scenarioTree(),
		{},
		{model.FilesKey: model.Files{"a.txt"}, "Code": model.Files{"f.go"}},
		{"All": model.Category{"Of": model.Category{"Them": model.Files{"a.txt", "b.txt", "c.png", "d.txt", "e.md", "f.go"}}}},
	} {
		fs := afero.NewMemMapFs()
		makeSource(t, fs, names...)

		res, err := (&Executor{Fs: fs, Journal: NewMemoryJournal()}).Execute(context.Background(), tree, sourceDir, nil)
		require.NoError(t, err)
		require.Empty(t, res.Errors)

		all := append(append([]string{}, res.MovedFiles...), res.Unclassified...)
		assert.Equal(t, len(names), len(all)+res.InPlace)
		if res.InPlace == 0 {
			sort.Strings(all)
			assert.Equal(t, names, all)
		}
	}
}

func TestExecuteFatalErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "a.txt")
	require.NoError(t, fs.MkdirAll("/empty", 0755))
	e := &Executor{Fs: fs}

	_, err := e.Execute(context.Background(), scenarioTree(), "/missing", nil)
	assert.ErrorIs(t, err, ErrSourceMissing)

	_, err = e.Execute(context.Background(), scenarioTree(), filepath.Join(sourceDir, "a.txt"), nil)
	assert.ErrorIs(t, err, ErrSourceNotDir)

	_, err = e.Execute(context.Background(), scenarioTree(), "/empty", nil)
	assert.ErrorIs(t, err, ErrSourceEmpty)
}

// cancelling cancels a context after the first journaled move
type cancelling struct {
	*MemoryJournal
	cancel context.CancelFunc
}

func (c cancelling) Append(r Record) error {
	defer c.cancel()
	return c.MemoryJournal.Append(r)
}

func TestExecuteCancellation(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "a.txt", "b.txt", "c.png")

	ctx, cancel := context.WithCancel(context.Background())
	journal := cancelling{MemoryJournal: NewMemoryJournal(), cancel: cancel}
	res, err := (&Executor{Fs: fs, Journal: journal}).Execute(ctx, scenarioTree(), sourceDir, nil)

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Moved)
	assert.Len(t, journal.Records(), 1, "completed moves stay journaled")
	assert.True(t, exists(fs, "Docs", "Reports", "a.txt"))
	assert.True(t, exists(fs, "b.txt"))
}

func TestPlan(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "a.txt", "b.txt", "c.png", "d.txt")
	journal := NewMemoryJournal()

	res, err := (&Executor{Fs: fs, Journal: journal}).Plan(context.Background(), scenarioTree(), sourceDir, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Moved)
	assert.Equal(t, []string{"d.txt"}, res.Unclassified)
	require.Len(t, res.Log, 3)
	assert.Equal(t, filepath.Join(sourceDir, "Images", "c.png"), res.Log[2].Destination)

	assert.Empty(t, journal.Records(), "a plan is not journaled")
	assert.True(t, exists(fs, "a.txt"))
	assert.False(t, exists(fs, "Docs"))
}

func TestPlanPredictsDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	makeSource(t, fs, "a.txt")

	res, err := (&Executor{Fs: fs}).Plan(context.Background(), model.Category{
		"A": model.Files{"a.txt"},
		"B": model.Files{"a.txt"},
	}, sourceDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Moved)
	require.Len(t, res.Errors, 1, "a file listed twice fails the second time, as it would on execution")
	assert.Contains(t, res.Errors[0], "already moved")
}

func TestSummary(t *testing.T) {
	res := &Result{Moved: 2, Errors: []string{"e1", "e2", "e3"}, Bytes: 2048}
	assert.Equal(t, "2 moved, 3 errors\n  e1\n  e2", res.Summary(2))
	assert.Equal(t, "2 moved, 3 errors\n  e1\n  e2\n  e3", res.Summary(10))
	assert.Equal(t, "2 moved, 3 errors", res.Summary(0))
	assert.Equal(t, "2.048kB", res.Size())
}

func TestExecuteBackslashFilename(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("backslash is a path separator on this host")
	}
	fs := afero.NewMemMapFs()
	makeSource(t, fs, `a\b.txt`)
	e := &Executor{Fs: fs, Journal: NewMemoryJournal()}

	res, err := e.Execute(context.Background(), model.Category{"Docs": model.Files{`a\b.txt`}}, sourceDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Moved)
	assert.Empty(t, res.Errors)
	assert.True(t, exists(fs, "Docs", `a\b.txt`))
}
