package model

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

const (
	// FilesKey is the reserved key holding files that sit directly under a category
	FilesKey = "_files_"

	// OthersKey is the top-level category receiving files released by a deletion
	OthersKey = "Others"

	// MiscKey is the subcategory used to nest a files list conflicting with a category
	MiscKey = "Misc"

	// MiscFilesKey is the key of the files list nested under MiscKey
	MiscFilesKey = "Files"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Node is either a Category or a Files list
type Node interface {
	isNode()
}

// Category maps unique names to child nodes
type Category map[string]Node

// Files is an ordered list of filenames
type Files []string

func (Category) isNode() {}
func (Files) isNode()    {}

var (
	_ Node = Category{}
	_ Node = Files{}
)

// MarshalJSON renders an empty or nil files list as [] rather than null
func (f Files) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

// Marshal serializes a tree to indented JSON with sorted keys
func Marshal(c Category) ([]byte, error) {
	if c == nil {
		c = Category{}
	}
	// cloning turns nil files lists into empty ones
	return json.MarshalIndent(CloneCategory(c), "", "  ")
}

// SortedKeys returns the keys of a category in lexical order
func SortedKeys(c Category) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of a node
func Clone(n Node) Node {
	switch v := n.(type) {
	case Category:
		return CloneCategory(v)
	case Files:
		return append(Files{}, v...)
	default:
		return nil
	}
}

// CloneCategory returns a deep copy of a category
func CloneCategory(c Category) Category {
	if c == nil {
		return nil
	}
	res := make(Category, len(c))
	for k, v := range c {
		res[k] = Clone(v)
	}
	return res
}
