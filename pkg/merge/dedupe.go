package merge

import (
	"github.com/oneconcern/foldersort/pkg/model"
)

// Dedupe ensures that every filename appears in at most one files list.
//
// The first occurrence in walk order (sorted keys, depth first, files of a category
// before its subcategories) is kept. Lists and categories emptied by the operation
// are pruned. It returns the filenames whose duplicates were dropped.
func Dedupe(tree model.Category) []string {
	seen := make(map[string]struct{})
	var dropped []string
	dedupe(tree, seen, &dropped)
	model.Prune(tree)
	return dropped
}

func dedupe(c model.Category, seen map[string]struct{}, dropped *[]string) {
	if files, ok := c[model.FilesKey].(model.Files); ok {
		c[model.FilesKey] = keepUnseen(files, seen, dropped)
	}
	for _, key := range model.SortedKeys(c) {
		if key == model.FilesKey {
			continue
		}
		switch v := c[key].(type) {
		case model.Category:
			dedupe(v, seen, dropped)
		case model.Files:
			c[key] = keepUnseen(v, seen, dropped)
		}
	}
}

func keepUnseen(files model.Files, seen map[string]struct{}, dropped *[]string) model.Files {
	kept := make(model.Files, 0, len(files))
	for _, name := range files {
		if _, dup := seen[name]; dup {
			*dropped = append(*dropped, name)
			continue
		}
		seen[name] = struct{}{}
		kept = append(kept, name)
	}
	return kept
}

// Restrict removes from the tree every filename absent from the allowed set, then prunes empty nodes.
//
// It returns the filenames that were removed.
func Restrict(tree model.Category, allowed map[string]struct{}) []string {
	var removed []string
	restrict(tree, allowed, &removed)
	model.Prune(tree)
	return removed
}

func restrict(c model.Category, allowed map[string]struct{}, removed *[]string) {
	for _, key := range model.SortedKeys(c) {
		switch v := c[key].(type) {
		case model.Category:
			restrict(v, allowed, removed)
		case model.Files:
			kept := make(model.Files, 0, len(v))
			for _, name := range v {
				if _, ok := allowed[name]; !ok {
					*removed = append(*removed, name)
					continue
				}
				kept = append(kept, name)
			}
			c[key] = kept
		}
	}
}
