// Package merge combines the partial category trees produced by batch classification.
//
// Conflicts are resolved by a single fixed policy:
//   - keys missing from the target are copied from the source,
//   - categories are merged recursively,
//   - files lists are concatenated then deduplicated, keeping the first occurrence,
//   - when a files list meets a category, the files are nested under "Misc/Files"
//     inside the category.
package merge

import (
	"go.uber.org/zap"

	"github.com/oneconcern/foldersort/pkg/dlogger"
	"github.com/oneconcern/foldersort/pkg/model"
)

// Merger folds category trees together
type Merger struct {
	l *zap.Logger
}

// Option for a merger
type Option func(*Merger)

// Logger sets a logger to report conflicts
func Logger(logger *zap.Logger) Option {
	return func(m *Merger) {
		m.l = dlogger.OrNop(logger)
	}
}

// New merger
func New(opts ...Option) *Merger {
	m := &Merger{l: zap.NewNop()}
	for _, apply := range opts {
		apply(m)
	}
	return m
}

var defaultMerger = New()

// Merge source into target, using a merger without logging
func Merge(target, source model.Category) model.Category {
	return defaultMerger.Merge(target, source)
}

// Fold merges trees sequentially into a fresh accumulator, using a merger without logging
func Fold(trees ...model.Category) model.Category {
	return defaultMerger.Fold(trees...)
}

// Merge source into target. The target is mutated and returned; the source is left unchanged.
func (m *Merger) Merge(target, source model.Category) model.Category {
	if target == nil {
		target = model.Category{}
	}
	m.merge(target, source, nil)
	return target
}

// Fold merges trees sequentially into a fresh accumulator
func (m *Merger) Fold(trees ...model.Category) model.Category {
	acc := model.Category{}
	for _, tree := range trees {
		m.merge(acc, tree, nil)
	}
	return acc
}

func (m *Merger) merge(target, source model.Category, path []string) {
	for _, key := range model.SortedKeys(source) {
		incoming := source[key]
		if incoming == nil {
			continue
		}
		existing, found := target[key]
		if !found || existing == nil {
			target[key] = model.Clone(incoming)
			continue
		}

		here := append(append([]string{}, path...), key)
		switch current := existing.(type) {
		case model.Category:
			switch in := incoming.(type) {
			case model.Category:
				m.merge(current, in, here)
			case model.Files:
				m.conflict(here, "category", "files")
				m.nestMisc(current, in, here)
			}
		case model.Files:
			switch in := incoming.(type) {
			case model.Files:
				target[key] = Union(current, in)
			case model.Category:
				m.conflict(here, "files", "category")
				nested := model.CloneCategory(in)
				m.nestMisc(nested, current, here)
				target[key] = nested
			}
		}
	}
}

// nestMisc stores files under Misc/Files inside a category
func (m *Merger) nestMisc(c model.Category, files model.Files, path []string) {
	misc := model.Category{
		model.MiscKey: model.Category{
			model.MiscFilesKey: append(model.Files{}, files...),
		},
	}
	m.merge(c, misc, path)
}

func (m *Merger) conflict(path []string, target, source string) {
	m.l.Warn("merge conflict resolved by nesting files under "+model.MiscKey,
		zap.String("path", model.JoinPath(path)),
		zap.String("target", target),
		zap.String("source", source),
	)
}

// Union concatenates files lists and removes duplicates, preserving the order of first occurrence
func Union(lists ...model.Files) model.Files {
	size := 0
	for _, l := range lists {
		size += len(l)
	}
	seen := make(map[string]struct{}, size)
	res := make(model.Files, 0, size)
	for _, l := range lists {
		for _, name := range l {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			res = append(res, name)
		}
	}
	return res
}
