package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/foldersort/pkg/model"
)

func TestTreesAreReproducible(t *testing.T) {
	assert.Equal(t, NewTrees(42).Tree(4, 5), NewTrees(42).Tree(4, 5))
}

func TestTreesHaveUniqueFilenames(t *testing.T) {
	g := NewTrees(7)
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		tree := g.Tree(4, 6)
		for _, name := range model.Filenames(tree) {
			require.NoError(t, model.ValidateFilename(name))
			_, dup := seen[name]
			require.Falsef(t, dup, "%s is generated twice", name)
			seen[name] = struct{}{}
		}
		model.Walk(tree, func(path []string, _ model.Files) {
			assert.NoError(t, model.ValidatePath(path))
		})
	}
}

func TestLetterString(t *testing.T) {
	s := NewTrees(1).LetterString(20)
	assert.Len(t, s, 20)
	assert.Regexp(t, `^[a-z0-9]+$`, s)
}

func benchmarkTree(b *testing.B, depth, width int) {
	g := NewTrees(1)
	for n := 0; n < b.N; n++ {
		_ = g.Tree(depth, width)
	}
}

func BenchmarkTreeSmall(b *testing.B) { benchmarkTree(b, 2, 5) }
func BenchmarkTreeLarge(b *testing.B) { benchmarkTree(b, 5, 10) }
