// Package rand generates random category trees for tests
package rand

import (
	"bytes"
	"fmt"
	"math/rand"
	"sync"

	"github.com/oneconcern/foldersort/pkg/model"
)

var extensions = []string{".txt", ".pdf", ".png", ".jpg", ".mp3", ".zip", ".go", ".xlsx", ""}

var (
	onceLetters sync.Once
	letters     []byte
)

func makeLetters() {
	// pads over 256 locations, so "a" is slightly more frequent than other signs
	letters = bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz0123456789a"), 7)
}

// Trees generates reproducible random trees. Filenames are unique across all the trees of a generator.
type Trees struct {
	r     *rand.Rand
	files int
}

// NewTrees builds a generator from a seed
func NewTrees(seed int64) *Trees {
	return &Trees{r: rand.New(rand.NewSource(seed))} // #nosec
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func (g *Trees) LetterString(n int) string {
	onceLetters.Do(makeLetters)
	buf := make([]byte, n)
	_, _ = g.r.Read(buf)
	for i, b := range buf {
		buf[i] = letters[b]
	}
	return string(buf)
}

// Filename returns a new filename
func (g *Trees) Filename() string {
	g.files++
	return fmt.Sprintf("%s-%d%s", g.LetterString(1+g.r.Intn(8)), g.files, extensions[g.r.Intn(len(extensions))])
}

// Files returns a list of up to n new filenames
func (g *Trees) Files(n int) model.Files {
	files := make(model.Files, g.r.Intn(n+1))
	for i := range files {
		files[i] = g.Filename()
	}
	return files
}

// Tree returns a category of up to width children, nested up to depth levels.
//
// Categories may hold files under the reserved files key. Category names are made of
// letters and digits, so they never collide with reserved names.
func (g *Trees) Tree(depth, width int) model.Category {
	c := model.Category{}
	if g.r.Intn(3) == 0 {
		c[model.FilesKey] = g.Files(width)
	}
	for i := g.r.Intn(width + 1); i > 0; i-- {
		name := g.LetterString(1 + g.r.Intn(6))
		if depth > 1 && g.r.Intn(2) == 0 {
			c[name] = g.Tree(depth-1, width)
			continue
		}
		c[name] = g.Files(width)
	}
	return c
}
