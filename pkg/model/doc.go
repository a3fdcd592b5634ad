// Package model describes the category tree manipulated by foldersort.
//
// The object model for foldersort is composed of:
//
//  Category:
//    A mapping from a unique name to a child node. A category becomes a folder
//    when the tree is applied to a directory.
//
//  Files:
//    An ordered list of filenames. Each filename names a file located directly
//    inside the source directory.
//
//  Tree:
//    A root Category. The reserved key "_files_" holds the files that sit
//    directly under a category, next to its subcategories.
//
// Paths are sequences of category names starting from the root. The empty path
// denotes the root itself.
package model
