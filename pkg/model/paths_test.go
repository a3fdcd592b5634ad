package model

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameFixture struct {
	name       string
	input      string
	wantsError bool
}

func nameTestCases() []nameFixture {
	return []nameFixture{
		// happy path
		{name: "simple", input: "Documents"},
		{name: "with spaces", input: "Tax Returns 2023"},
		{name: "unicode", input: "Fotos de verano"},
		{name: "dotted", input: "v1.2"},
		// invalid names
		{name: "empty", input: "", wantsError: true},
		{name: "blank", input: "   ", wantsError: true},
		{name: "reserved", input: FilesKey, wantsError: true},
		{name: "dot", input: ".", wantsError: true},
		{name: "dotdot", input: "..", wantsError: true},
		{name: "slash", input: "a/b", wantsError: true},
		{name: "backslash", input: `a\b`, wantsError: true},
		{name: "too long", input: strings.Repeat("x", maxNameLength+1), wantsError: true},
	}
}

func TestValidateName(t *testing.T) {
	for _, toPin := range nameTestCases() {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidateName(testCase.input)
			if testCase.wantsError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, ValidateFilename("report.final.pdf"))
	assert.NoError(t, ValidateFilename(FilesKey), "filenames may collide with the reserved key")
	assert.Error(t, ValidateFilename(""))
	assert.Error(t, ValidateFilename("../escape.txt"))
	assert.Error(t, ValidateFilename("sub/dir.txt"))
	assert.Error(t, ValidateFilename(".."))

	if filepath.Separator == '/' {
		assert.NoError(t, ValidateFilename(`a\b.txt`), "backslashes are plain characters on this host")
	} else {
		assert.Error(t, ValidateFilename(`a\b.txt`))
	}
	assert.Error(t, ValidateName(`a\b`), "category names stay portable")
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath(nil))
	assert.NoError(t, ValidatePath([]string{"Docs", "Reports"}))
	assert.Error(t, ValidatePath([]string{"Docs", ".."}))
}

func TestSplitJoinPath(t *testing.T) {
	assert.Equal(t, "/", JoinPath(nil))
	assert.Equal(t, "Docs/Reports", JoinPath([]string{"Docs", "Reports"}))
	assert.Nil(t, SplitPath("/"))
	assert.Equal(t, []string{"Docs", "Reports"}, SplitPath("/Docs/Reports/"))
}
