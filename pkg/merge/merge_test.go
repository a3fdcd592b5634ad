package merge

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oneconcern/foldersort/internal/rand"
	"github.com/oneconcern/foldersort/pkg/model"
)

func TestMergeDedupesFiles(t *testing.T) {
	target := model.Category{"Code": model.Files{"x.py"}}
	source := model.Category{"Code": model.Files{"x.py", "y.py"}}

	res := Merge(target, source)
	assert.Equal(t, model.Category{"Code": model.Files{"x.py", "y.py"}}, res)
}

func TestMergeConflictNestsFilesUnderMisc(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := New(Logger(zap.New(core)))

	target := model.Category{"Code": model.Files{"x.py"}}
	source := model.Category{"Code": model.Category{"Sub": model.Files{"y.py"}}}

	res := m.Merge(target, source)
	expected := model.Category{
		"Code": model.Category{
			"Misc": model.Category{"Files": model.Files{"x.py"}},
			"Sub":  model.Files{"y.py"},
		},
	}
	if diff := cmp.Diff(expected, res); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, logs.Len(), "a conflict is reported as a warning")

	// the opposite direction yields the same shape
	res = Merge(
		model.Category{"Code": model.Category{"Sub": model.Files{"y.py"}}},
		model.Category{"Code": model.Files{"x.py"}},
	)
	assert.Equal(t, expected, res)
}

func TestMergeConflictWithExistingMisc(t *testing.T) {
	target := model.Category{
		"Code": model.Category{
			"Misc": model.Category{"Files": model.Files{"a.py"}},
		},
	}
	res := Merge(target, model.Category{"Code": model.Files{"b.py", "a.py"}})
	assert.Equal(t, model.Category{
		"Code": model.Category{
			"Misc": model.Category{"Files": model.Files{"a.py", "b.py"}},
		},
	}, res)
}

func TestMergeCopiesWholesale(t *testing.T) {
	source := model.Category{"Docs": model.Category{"Reports": model.Files{"r.pdf"}}}
	target := Merge(model.Category{"Images": model.Files{"i.png"}}, source)

	assert.Equal(t, model.Category{
		"Docs":   model.Category{"Reports": model.Files{"r.pdf"}},
		"Images": model.Files{"i.png"},
	}, target)

	// mutating the result leaves the source alone
	target["Docs"].(model.Category)["Reports"] = model.Files{}
	n, _ := source.Get("Docs", "Reports")
	assert.Equal(t, model.Files{"r.pdf"}, n)
}

func TestMergeNilTarget(t *testing.T) {
	res := Merge(nil, model.Category{"A": model.Files{"a"}})
	assert.Equal(t, model.Category{"A": model.Files{"a"}}, res)
}

func mergeFixtures() []model.Category {
	return []model.Category{
		{"Code": model.Files{"x.py"}},
		{"Code": model.Files{"x.py", "y.py"}, "Docs": model.Files{"d.txt"}},
		{"Code": model.Category{"Sub": model.Files{"y.py"}}},
		{"Docs": model.Category{"Reports": model.Files{"r.pdf"}, model.FilesKey: model.Files{"d.txt"}}},
		{"Images": model.Files{"a.png"}, "Code": model.Category{"Misc": model.Files{"z.py"}}},
		{},
	}
}

func TestMergeIdempotent(t *testing.T) {
	for i, target := range mergeFixtures() {
		for j, source := range mergeFixtures() {
			once := Merge(model.CloneCategory(target), source)
			twice := Merge(model.CloneCategory(once), source)
			require.Equalf(t, once, twice, "merge(%d, %d) is not idempotent", i, j)
		}
	}
}

func TestMergeFilesOnlyCommutativeMembership(t *testing.T) {
	a := model.Category{"Code": model.Files{"x.py", "z.py"}, "Docs": model.Files{"d.txt"}}
	b := model.Category{"Code": model.Files{"y.py", "x.py"}, "Misc": model.Files{"m"}}

	ab := Merge(model.CloneCategory(a), b)
	ba := Merge(model.CloneCategory(b), a)

	require.ElementsMatch(t, model.SortedKeys(ab), model.SortedKeys(ba))
	for _, key := range model.SortedKeys(ab) {
		assert.ElementsMatch(t, ab[key], ba[key], key)
	}
}

func TestFoldBatchOrderOnlyAffectsOrdering(t *testing.T) {
	batches := []model.Category{
		{"Code": model.Files{"b.py"}},
		{"Code": model.Files{"a.py", "b.py"}},
		{"Docs": model.Files{"c.txt"}},
	}
	forward := Fold(batches...)
	backward := Fold(batches[2], batches[1], batches[0])

	assert.Equal(t, model.Files{"b.py", "a.py"}, forward["Code"])
	assert.Equal(t, model.Files{"a.py", "b.py"}, backward["Code"])

	f, b := model.Filenames(forward), model.Filenames(backward)
	sort.Strings(f)
	sort.Strings(b)
	assert.Equal(t, f, b)
}

func TestUnion(t *testing.T) {
	assert.Equal(t, model.Files{"a", "b", "c"}, Union(model.Files{"a", "b"}, model.Files{"b", "c", "a"}))
	assert.Equal(t, model.Files{}, Union())
}

func TestMergeRandomTrees(t *testing.T) {
	g := rand.NewTrees(3)
	for i := 0; i < 50; i++ {
		// short names at shallow depth, so that categories often collide
		a, b := g.Tree(3, 4), g.Tree(3, 4)

		expected := model.FileSet(a)
		for name := range model.FileSet(b) {
			expected[name] = struct{}{}
		}

		merged := Merge(model.CloneCategory(a), b)
		require.Equal(t, expected, model.FileSet(merged), "no file is lost")
		require.Equal(t, model.Count(merged), len(expected), "no file is listed twice")
		require.Equal(t, merged, Merge(model.CloneCategory(merged), b), "merging twice changes nothing")
		require.Equal(t, a, Merge(model.CloneCategory(a), a), "merging a tree into itself changes nothing")
	}
}

func TestMergerNilLogger(t *testing.T) {
	m := New(Logger(nil))
	require.NotNil(t, m.l)

	res := m.Merge(model.Category{"Docs": model.Files{"a.txt"}}, model.Category{"Docs": model.Category{"Q1": model.Files{"b.txt"}}})
	assert.Equal(t, model.Category{"Docs": model.Category{
		"Q1":          model.Files{"b.txt"},
		model.MiscKey: model.Category{model.MiscFilesKey: model.Files{"a.txt"}},
	}}, res)
}
