package classify

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/oneconcern/foldersort/pkg/model"
)

// NoExtension is the category of files without extension
const NoExtension = "No Extension"

var extensionCategories = map[string][]string{
	"Images":        {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".svg", ".heic", ".heif", ".ico"},
	"Documents":     {".pdf", ".docx", ".doc", ".txt", ".rtf", ".odt", ".wpd", ".md"},
	"Spreadsheets":  {".xlsx", ".xls", ".csv", ".ods"},
	"Presentations": {".pptx", ".ppt", ".odp"},
	"Videos":        {".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm", ".mpeg", ".mpg"},
	"Audio":         {".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma"},
	"Archives":      {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".iso"},
	"Code":          {".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".h", ".cs", ".php", ".rb", ".json", ".xml", ".yaml", ".sh", ".bat"},
	"Executables":   {".exe", ".msi", ".app", ".dmg", ".deb", ".rpm", ".jar"},
	"Fonts":         {".ttf", ".otf", ".woff", ".woff2"},
	"Databases":     {".sqlite", ".db", ".sql", ".mdb", ".accdb"},
}

var byExtension = func() map[string]string {
	m := make(map[string]string)
	for category, exts := range extensionCategories {
		for _, ext := range exts {
			m[ext] = category
		}
	}
	return m
}()

// CategoryOf returns the category of a filename, from its extension
func CategoryOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || ext == name {
		return NoExtension
	}
	if category, ok := byExtension[ext]; ok {
		return category
	}
	return model.OthersKey
}

// Extension classifies files by extension, offline. Instructions are ignored.
type Extension struct{}

// Classify a batch
func (Extension) Classify(ctx context.Context, batch []string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tree := model.Category{}
	for _, name := range batch {
		category := CategoryOf(name)
		files, _ := tree[category].(model.Files)
		tree[category] = append(files, name)
	}
	data, err := model.Marshal(tree)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
