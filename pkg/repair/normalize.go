package repair

import (
	"sort"
	"strconv"
	"strings"

	"github.com/oneconcern/foldersort/pkg/merge"
	"github.com/oneconcern/foldersort/pkg/model"
)

// normalizeCategory converts a decoded JSON object into a category.
//
// Strings become one-element files lists, arrays become files lists, and keys
// spelled as slash-separated paths are expanded into nested categories.
func normalizeCategory(obj map[string]interface{}) model.Category {
	res := make(model.Category, len(obj))

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := obj[key]
		if key == model.FilesKey {
			addFiles(res, flattenFiles(value))
			continue
		}

		node := normalizeNode(value)
		if node == nil {
			continue
		}

		path := splitKey(key)
		if len(path) > 0 && path[len(path)-1] == model.FilesKey {
			node = model.Files(model.Filenames(node))
		}
		switch len(path) {
		case 0:
			// an unnamed category holds files of the current level
			addFiles(res, model.Files(model.Filenames(node)))
		case 1:
			merge.Merge(res, model.Category{path[0]: node})
		default:
			nested := model.Category{}
			_ = nested.Set(path, node)
			merge.Merge(res, nested)
		}
	}
	return res
}

// splitKey keeps segments verbatim, dropping the blank ones no category may be named after
func splitKey(key string) []string {
	var path []string
	for _, segment := range strings.Split(key, "/") {
		if strings.TrimSpace(segment) != "" {
			path = append(path, segment)
		}
	}
	return path
}

func addFiles(c model.Category, files model.Files) {
	if len(files) == 0 {
		if _, ok := c[model.FilesKey]; !ok {
			c[model.FilesKey] = model.Files{}
		}
		return
	}
	merge.Merge(c, model.Category{model.FilesKey: files})
}

func normalizeNode(v interface{}) model.Node {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return normalizeCategory(t)
	case []interface{}:
		files := make(model.Files, 0, len(t))
		for _, item := range t {
			if s, ok := coerce(item); ok {
				files = append(files, s)
			}
		}
		return files
	default:
		if s, ok := coerce(t); ok {
			return model.Files{s}
		}
		return nil
	}
}

// flattenFiles collects every filename found below a value meant to be a files list
func flattenFiles(v interface{}) model.Files {
	files := model.Files{}
	switch t := v.(type) {
	case map[string]interface{}:
		return append(files, model.Filenames(normalizeCategory(t))...)
	case []interface{}:
		for _, item := range t {
			if sub, ok := item.(map[string]interface{}); ok {
				files = append(files, model.Filenames(normalizeCategory(sub))...)
				continue
			}
			if s, ok := coerce(item); ok {
				files = append(files, s)
			}
		}
	default:
		if s, ok := coerce(t); ok {
			files = append(files, s)
		}
	}
	return files
}

// coerce a JSON value into a filename string
func coerce(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
