package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v2"

	"github.com/oneconcern/foldersort/pkg/editor"
	"github.com/oneconcern/foldersort/pkg/model"
	"github.com/oneconcern/foldersort/pkg/mover"
)

var (
	categoryColor = color.New(color.FgBlue, color.Bold)
	movedColor    = color.New(color.FgGreen)
	errorColor    = color.New(color.FgRed)
	warnColor     = color.New(color.FgYellow)
)

func printTree(w io.Writer, tree model.Category) {
	if len(tree) == 0 {
		_, _ = fmt.Fprintln(w, color.HiBlackString("(empty plan)"))
		return
	}
	printCategory(w, tree, 0)
}

func printCategory(w io.Writer, c model.Category, depth int) {
	indent := strings.Repeat("  ", depth)
	if files, ok := c[model.FilesKey].(model.Files); ok {
		printFiles(w, files, depth)
	}
	for _, key := range model.SortedKeys(c) {
		if key == model.FilesKey {
			continue
		}
		_, _ = categoryColor.Fprintf(w, "%s%s/", indent, key)
		_, _ = fmt.Fprintln(w)
		switch v := c[key].(type) {
		case model.Category:
			printCategory(w, v, depth+1)
		case model.Files:
			printFiles(w, v, depth+1)
		}
	}
}

func printFiles(w io.Writer, files model.Files, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range files {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, name)
	}
}

func printTable(w io.Writer, tree model.Category) {
	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("ID", "PARENT", "KIND", "NAME")
	for _, row := range editor.Flatten(tree) {
		table.AddRow(row.ID, row.ParentID, row.Kind, row.Name)
	}
	_, _ = fmt.Fprintln(w, table.String())
}

func printYAML(w io.Writer, tree model.Category) error {
	o, err := yaml.Marshal(tree)
	if err != nil {
		return err
	}
	_, err = w.Write(o)
	return err
}

func printResult(w io.Writer, res *mover.Result, dryRun bool, maxErrors int) {
	verb := "Moved"
	if dryRun {
		verb = "Would move"
	}
	_, _ = movedColor.Fprintf(w, "%s %d file(s)", verb, res.Moved)
	_, _ = fmt.Fprintf(w, " (%s)\n", res.Size())

	if len(res.Errors) > 0 {
		_, _ = errorColor.Fprintln(w, res.Summary(maxErrors))
	}
	if res.InPlace > 0 {
		_, _ = fmt.Fprintf(w, "%d file(s) already in place\n", res.InPlace)
	}
	if len(res.Unclassified) > 0 {
		_, _ = warnColor.Fprintf(w, "%d file(s) left unclassified: %s\n", len(res.Unclassified), strings.Join(res.Unclassified, ", "))
	}
}
