package analyzer

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPos is the part of speech of a dictionary line without a tag.
const DefaultPos = "NNP"

// Entry is one line of the user dictionary file.
type Entry struct {
	Keyword string
	Pos     string
}

func (e Entry) String() string {
	return e.Keyword + "\t" + e.Pos
}

// ParseLine parses "keyword<TAB>pos". Blank lines and # comments yield false.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}
	keyword, pos, found := strings.Cut(line, "\t")
	keyword, pos = strings.TrimSpace(keyword), strings.TrimSpace(pos)
	if !found || pos == "" {
		pos = DefaultPos
	}
	if keyword == "" {
		return Entry{}, false
	}
	return Entry{Keyword: keyword, Pos: pos}, true
}

// ReadUserDict reads the dictionary file. A missing file is an empty dictionary.
func ReadUserDict(path string) ([]Entry, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read user dictionary %s", path)
	}

	entries := []Entry{}
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	for scanner.Scan() {
		if entry, ok := ParseLine(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan user dictionary %s", path)
	}
	return entries, nil
}

// WriteUserDict replaces the dictionary file with the given entries.
func WriteUserDict(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create user dictionary directory for %s", path)
	}

	var buf bytes.Buffer
	for _, entry := range entries {
		if strings.TrimSpace(entry.Keyword) == "" {
			continue
		}
		if entry.Pos == "" {
			entry.Pos = DefaultPos
		}
		buf.WriteString(entry.String())
		buf.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write user dictionary %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "failed to replace user dictionary %s", path)
	}
	return nil
}

// UpsertEntry replaces the line of an existing keyword or appends a new one.
// It reports whether the file changed.
func UpsertEntry(path string, entry Entry) (bool, error) {
	entries, err := ReadUserDict(path)
	if err != nil {
		return false, err
	}
	if entry.Pos == "" {
		entry.Pos = DefaultPos
	}

	found := false
	for i, e := range entries {
		if e.Keyword != entry.Keyword {
			continue
		}
		if e.Pos == entry.Pos {
			return false, nil
		}
		entries[i] = entry
		found = true
		break
	}
	if !found {
		entries = append(entries, entry)
	}
	return true, WriteUserDict(path, entries)
}
