package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/foldersort/pkg/model"
)

func TestFlatten(t *testing.T) {
	rows := Flatten(model.Category{
		model.FilesKey: model.Files{"root.txt"},
		"Docs": model.Category{
			model.FilesKey: model.Files{"d.txt"},
			"Reports":      model.Files{"a.txt"},
		},
		"Images": model.Files{"c.png"},
	})

	assert.Equal(t, []Row{
		{ID: 1, ParentID: RootID, Kind: KindFile, Name: "root.txt"},
		{ID: 2, ParentID: RootID, Kind: KindFolder, Name: "Docs"},
		{ID: 3, ParentID: 2, Kind: KindFile, Name: "d.txt"},
		{ID: 4, ParentID: 2, Kind: KindFolder, Name: "Reports"},
		{ID: 5, ParentID: 4, Kind: KindFile, Name: "a.txt"},
		{ID: 6, ParentID: RootID, Kind: KindFolder, Name: "Images"},
		{ID: 7, ParentID: 6, Kind: KindFile, Name: "c.png"},
	}, rows)

	assert.Empty(t, Flatten(model.Category{}))
}

func TestFlattenRebuildRoundTrip(t *testing.T) {
	for _, tree := range []model.Category{
		{},
		testTree(),
		richTree(),
		{"A": model.Category{"B": model.Category{"C": model.Files{"deep"}}}},
	} {
		rebuilt, err := RebuildFromFlat(Flatten(tree))
		require.NoError(t, err)
		if diff := cmp.Diff(tree, rebuilt); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRebuildFromFlat(t *testing.T) {
	rows := []Row{
		{ID: 10, ParentID: RootID, Kind: KindFolder, Name: "Docs"},
		{ID: 11, ParentID: 10, Kind: KindFolder, Name: "Empty"},
		{ID: 12, ParentID: 10, Kind: KindFolder, Name: "Reports"},
		{ID: 13, ParentID: 12, Kind: KindFile, Name: "a.txt"},
		{ID: 14, ParentID: 10, Kind: KindFile, Name: "d.txt"},
		{ID: 15, ParentID: RootID, Kind: KindFolder, Name: "Images"},
		{ID: 16, ParentID: 15, Kind: KindFile, Name: "c.png"},
		{ID: 17, ParentID: 15, Kind: KindFile, Name: "c.png"},
		{ID: 18, ParentID: RootID, Kind: KindFile, Name: "loose.txt"},
		{ID: 19, ParentID: RootID, Kind: KindFolder, Name: "Nothing"},
		{ID: 20, ParentID: 19, Kind: KindFolder, Name: "Below"},
	}
	tree, err := RebuildFromFlat(rows)
	require.NoError(t, err)

	assert.Equal(t, model.Category{
		model.FilesKey: model.Files{"loose.txt"},
		"Docs": model.Category{
			model.FilesKey: model.Files{"d.txt"},
			"Reports":      model.Files{"a.txt"},
		},
		"Images": model.Files{"c.png"},
	}, tree)
}

func TestRebuildFromFlatOnlyRootFiles(t *testing.T) {
	tree, err := RebuildFromFlat([]Row{{ID: 1, Kind: KindFile, Name: "a"}})
	require.NoError(t, err)
	assert.Equal(t, model.Category{model.FilesKey: model.Files{"a"}}, tree)

	tree, err = RebuildFromFlat(nil)
	require.NoError(t, err)
	assert.Equal(t, model.Category{}, tree)
}

func TestRebuildFromFlatRejected(t *testing.T) {
	for _, toPin := range []struct {
		name     string
		rows     []Row
		sentinel error
	}{
		{
			name:     "dangling parent",
			rows:     []Row{{ID: 1, ParentID: 42, Kind: KindFile, Name: "a"}},
			sentinel: ErrInvalidRows,
		},
		{
			name: "cycle",
			rows: []Row{
				{ID: 1, ParentID: 2, Kind: KindFolder, Name: "A"},
				{ID: 2, ParentID: 1, Kind: KindFolder, Name: "B"},
			},
			sentinel: ErrInvalidRows,
		},
		{
			name:     "own parent",
			rows:     []Row{{ID: 1, ParentID: 1, Kind: KindFolder, Name: "A"}},
			sentinel: ErrInvalidRows,
		},
		{
			name: "file as parent",
			rows: []Row{
				{ID: 1, ParentID: RootID, Kind: KindFile, Name: "a"},
				{ID: 2, ParentID: 1, Kind: KindFile, Name: "b"},
			},
			sentinel: ErrInvalidRows,
		},
		{
			name: "duplicate id",
			rows: []Row{
				{ID: 1, ParentID: RootID, Kind: KindFolder, Name: "A"},
				{ID: 1, ParentID: RootID, Kind: KindFolder, Name: "B"},
			},
			sentinel: ErrInvalidRows,
		},
		{
			name:     "invalid id",
			rows:     []Row{{ID: 0, ParentID: RootID, Kind: KindFolder, Name: "A"}},
			sentinel: ErrInvalidRows,
		},
		{
			name:     "unknown kind",
			rows:     []Row{{ID: 1, ParentID: RootID, Kind: "link", Name: "A"}},
			sentinel: ErrInvalidRows,
		},
		{
			name: "duplicate sibling folders",
			rows: []Row{
				{ID: 1, ParentID: RootID, Kind: KindFolder, Name: "A"},
				{ID: 2, ParentID: RootID, Kind: KindFolder, Name: "A"},
			},
			sentinel: ErrDuplicateName,
		},
		{
			name:     "invalid folder name",
			rows:     []Row{{ID: 1, ParentID: RootID, Kind: KindFolder, Name: "a/b"}},
			sentinel: ErrInvalidName,
		},
		{
			name:     "empty filename",
			rows:     []Row{{ID: 1, ParentID: RootID, Kind: KindFile}},
			sentinel: ErrInvalidName,
		},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			_, err := RebuildFromFlat(testCase.rows)
			requireInvalidEdit(t, err, testCase.sentinel)
		})
	}
}
