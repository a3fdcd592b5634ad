// Package classify provides the classifiers proposing a category tree for a batch of filenames.
//
// A classifier returns raw text, which is not guaranteed to be valid JSON: its output
// is meant to go through the repair parser.
package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Classifier proposes a category tree for a batch of filenames
type Classifier interface {
	Classify(ctx context.Context, batch []string, instructions string) (string, error)
}

// Func adapts a function to the Classifier interface
type Func func(ctx context.Context, batch []string, instructions string) (string, error)

// Classify with the function
func (f Func) Classify(ctx context.Context, batch []string, instructions string) (string, error) {
	return f(ctx, batch, instructions)
}

const promptTemplate = `You are an expert file organizer. Given a list of filenames from a directory, generate a JSON structure proposing a logical organization into folders and subfolders.
%s
Group similar files together. Use descriptive names for topics and subtopics. Reply with the JSON structure only. The structure should resemble this example:

{
  "Topic_1": {
    "Subtopic_1": ["file1.txt", "file2.pdf"],
    "Subtopic_2": ["imageA.jpg"]
  },
  "Topic_2": ["archive.zip", "installer.exe"]
}

Every file must appear exactly once. Here is the list of files to organize:
%s
`

// Prompt builds the prompt shared by language model classifiers
func Prompt(batch []string, instructions string) string {
	if batch == nil {
		batch = []string{}
	}
	files, _ := json.MarshalIndent(batch, "", "  ")

	var extra string
	if instructions = strings.TrimSpace(instructions); instructions != "" {
		extra = "Follow these additional instructions from the user: " + instructions + "\n"
	}
	return fmt.Sprintf(promptTemplate, extra, files)
}

var fence = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\n?(.*?)\\s*```")

// StripFences returns the content of the first Markdown code block of some text,
// or the trimmed text when it holds no complete code block
func StripFences(text string) string {
	if m := fence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
