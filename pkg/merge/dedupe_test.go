package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oneconcern/foldersort/pkg/model"
)

func TestDedupe(t *testing.T) {
	tree := model.Category{
		"Code": model.Category{
			model.FilesKey: model.Files{"shared.txt"},
			"Python":       model.Files{"x.py", "shared.txt"},
		},
		"Docs":   model.Files{"shared.txt", "d.txt"},
		"Others": model.Files{"x.py"},
	}

	dropped := Dedupe(tree)

	assert.Equal(t, model.Category{
		"Code": model.Category{
			model.FilesKey: model.Files{"shared.txt"},
			"Python":       model.Files{"x.py"},
		},
		"Docs": model.Files{"d.txt"},
	}, tree)
	assert.ElementsMatch(t, []string{"shared.txt", "shared.txt", "x.py"}, dropped)
}

func TestRestrict(t *testing.T) {
	tree := model.Category{
		"Code":  model.Files{"x.py", "ghost.py"},
		"Ghost": model.Category{"Deeper": model.Files{"ghost.txt"}},
	}
	removed := Restrict(tree, map[string]struct{}{"x.py": {}})

	assert.Equal(t, model.Category{"Code": model.Files{"x.py"}}, tree)
	assert.ElementsMatch(t, []string{"ghost.py", "ghost.txt"}, removed)
}
