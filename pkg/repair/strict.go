package repair

import (
	"fmt"

	"github.com/oneconcern/foldersort/pkg/model"
)

// Strict parses a persisted structure document without attempting any repair.
//
// The root must be an object. Every value is either an object (a subcategory),
// an array of strings (files) or a single string (one file). The reserved key
// "_files_" only accepts files. Category names must be valid folder names.
func Strict(data []byte) (model.Category, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, ErrInvalidStructure.Wrap(err)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, ErrInvalidStructure.Wrap(ErrNotAnObject)
	}
	tree, err := strictCategory(obj, nil)
	if err != nil {
		return nil, ErrInvalidStructure.Wrap(err)
	}
	return tree, nil
}

func strictCategory(obj map[string]interface{}, path []string) (model.Category, error) {
	res := make(model.Category, len(obj))
	for key, value := range obj {
		here := append(append([]string{}, path...), key)
		if key != model.FilesKey {
			if err := model.ValidateName(key); err != nil {
				return nil, fmt.Errorf("at %s: %w", model.JoinPath(here), err)
			}
		}

		switch t := value.(type) {
		case map[string]interface{}:
			if key == model.FilesKey {
				return nil, fmt.Errorf("at %s: %q only holds files", model.JoinPath(here), model.FilesKey)
			}
			sub, err := strictCategory(t, here)
			if err != nil {
				return nil, err
			}
			res[key] = sub
		case []interface{}:
			files := make(model.Files, 0, len(t))
			for i, item := range t {
				name, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("at %s[%d]: expected a filename, got %T", model.JoinPath(here), i, item)
				}
				files = append(files, name)
			}
			res[key] = files
		case string:
			res[key] = model.Files{t}
		default:
			return nil, fmt.Errorf("at %s: expected an object, an array or a string, got %T", model.JoinPath(here), value)
		}
	}
	return res, nil
}
