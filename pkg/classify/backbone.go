package classify

import (
	"context"

	"github.com/oneconcern/foldersort/pkg/model"
)

// Backbone classifies files according to a known structure.
//
// Files of the batch listed in the structure keep their place in it; the other
// ones go to the top-level Others category. Categories with no file of the batch
// are left out.
type Backbone struct {
	Structure model.Category
}

// Classify a batch
func (b Backbone) Classify(ctx context.Context, batch []string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pending := make(map[string]struct{}, len(batch))
	for _, name := range batch {
		pending[name] = struct{}{}
	}

	tree := model.Category{}
	model.Walk(b.Structure, func(path []string, files model.Files) {
		var kept model.Files
		for _, name := range files {
			if _, ok := pending[name]; ok {
				kept = append(kept, name)
				delete(pending, name)
			}
		}
		if len(kept) == 0 {
			return
		}
		key := path
		if _, isCategory := b.Structure.GetCategory(path...); isCategory {
			key = append(append([]string{}, path...), model.FilesKey)
		}
		current, _ := tree.Get(key...)
		existing, _ := current.(model.Files)
		_ = tree.Set(key, append(existing, kept...))
	})

	var others model.Files
	for _, name := range batch {
		if _, ok := pending[name]; ok {
			others = append(others, name)
			delete(pending, name)
		}
	}
	if len(others) > 0 {
		current, _ := tree.Get(model.OthersKey)
		switch v := current.(type) {
		case model.Category:
			files, _ := v[model.FilesKey].(model.Files)
			v[model.FilesKey] = append(files, others...)
		case model.Files:
			tree[model.OthersKey] = append(v, others...)
		default:
			tree[model.OthersKey] = others
		}
	}

	data, err := model.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
