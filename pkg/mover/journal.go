package mover

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const journalExt = ".jsonl"

// Record of one completed move
type Record struct {
	Destination string    `json:"destination"`
	Source      string    `json:"source"`
	Size        int64     `json:"size,omitempty"`
	Time        time.Time `json:"time"`

	// Dirs lists the directories created for this move, outermost first
	Dirs []string `json:"dirs,omitempty"`
}

// Log of the moves of one run, in execution order
type Log []Record

// Journal persists move records as they happen
type Journal interface {
	Append(Record) error
	Records() Log
	Clear() error
}

// MemoryJournal keeps records in memory only
type MemoryJournal struct {
	records Log
}

// NewMemoryJournal builds an empty in-memory journal
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Append a record
func (j *MemoryJournal) Append(r Record) error {
	j.records = append(j.records, r)
	return nil
}

// Records returns a copy of the log
func (j *MemoryJournal) Records() Log {
	return append(Log{}, j.records...)
}

// Clear the log
func (j *MemoryJournal) Clear() error {
	j.records = nil
	return nil
}

// FileJournal appends one JSON line per record to a file, flushed before Append returns.
//
// The file is created on the first append. Files are named after a time-sortable run ID,
// so the latest run of a directory is found by name.
type FileJournal struct {
	fs      afero.Fs
	path    string
	file    afero.File
	records Log
}

// NewFileJournal prepares a journal for a new run, stored in dir
func NewFileJournal(fs afero.Fs, dir string) *FileJournal {
	return &FileJournal{
		fs:   fs,
		path: filepath.Join(dir, ksuid.New().String()+journalExt),
	}
}

// Path of the journal file
func (j *FileJournal) Path() string {
	return j.path
}

// Append a record and flush it to storage
func (j *FileJournal) Append(r Record) error {
	if j.file == nil {
		if err := j.fs.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
			return ErrJournal.Wrap(err)
		}
		file, err := j.fs.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return ErrJournal.Wrap(err)
		}
		j.file = file
	}

	line, err := json.Marshal(r)
	if err != nil {
		return ErrJournal.Wrap(err)
	}
	if _, err = j.file.Write(append(line, '\n')); err != nil {
		return ErrJournal.Wrap(err)
	}
	if err = j.file.Sync(); err != nil {
		return ErrJournal.Wrap(err)
	}
	j.records = append(j.records, r)
	return nil
}

// Records returns a copy of the log
func (j *FileJournal) Records() Log {
	return append(Log{}, j.records...)
}

// Clear the log and remove the journal file
func (j *FileJournal) Clear() error {
	j.records = nil
	if err := j.Close(); err != nil {
		return err
	}
	if err := j.fs.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return ErrJournal.Wrap(err)
	}
	return nil
}

// Close the journal file. Further appends reopen it.
func (j *FileJournal) Close() error {
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

// LoadJournal reads back a journal file.
//
// An undecodable last line is ignored, since it may have been cut short by a crash.
func LoadJournal(fs afero.Fs, path string) (*FileJournal, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	j := &FileJournal{fs: fs, path: path}
	var lines [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := bytes.TrimSpace(scanner.Bytes()); len(line) > 0 {
			lines = append(lines, append([]byte{}, line...))
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, ErrCorruptJournal.Wrap(err)
	}

	for i, line := range lines {
		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			if i == len(lines)-1 {
				break
			}
			return nil, ErrCorruptJournal.Wrapf("%s, line %d: %v", path, i+1, err)
		}
		j.records = append(j.records, r)
	}
	return j, nil
}

// LatestJournal loads the most recent journal of dir holding at least one record
func LatestJournal(fs afero.Fs, dir string) (*FileJournal, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoJournal
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), journalExt) {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		j, err := LoadJournal(fs, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if len(j.records) > 0 {
			return j, nil
		}
	}
	return nil, ErrNoJournal
}
