// Package dataset reads the JSON Lines email collections the browser shows.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Names lists the bundled datasets, one per generation action.
var Names = []string{"shorten", "lengthen", "tone"}

// ErrNotFound is returned when a dataset file does not exist.
var ErrNotFound = errors.New("dataset not found")

// maxLine bounds a single JSONL record.
const maxLine = 1 << 20

// Email is one record. Fields other than id, sender, subject and content are
// kept in Extra.
type Email struct {
	ID      string
	Sender  string
	Subject string
	Content string
	Extra   map[string]any
}

// HasContent reports whether the record carried a content field.
func (e Email) HasContent() bool {
	return e.Content != ""
}

// Preview returns the first n runes of the subject, or of the content when
// there is no subject, on a single line.
func (e Email) Preview(n int) string {
	text := e.Subject
	if text == "" {
		text = e.Content
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// JSON renders the whole record, used when there is no content to show.
func (e Email) JSON() string {
	record := make(map[string]any, len(e.Extra)+4)
	for k, v := range e.Extra {
		record[k] = v
	}
	record["id"] = e.ID
	if e.Sender != "" {
		record["sender"] = e.Sender
	}
	if e.Subject != "" {
		record["subject"] = e.Subject
	}
	if e.Content != "" {
		record["content"] = e.Content
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Sprint(record)
	}
	return string(data)
}

// Dataset is an ordered list of emails.
type Dataset struct {
	Name   string
	Emails []Email
	// Skipped counts lines that were not valid JSON objects.
	Skipped int
}

func (d *Dataset) Len() int {
	return len(d.Emails)
}

// Lookup finds an email by ID.
func (d *Dataset) Lookup(id string) (*Email, bool) {
	for i := range d.Emails {
		if d.Emails[i].ID == id {
			return &d.Emails[i], true
		}
	}
	return nil, false
}

// Path returns the file a named dataset is read from.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".jsonl")
}

// Available returns the names of the .jsonl files in dir, sorted.
func Available(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".jsonl"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads dir/name.jsonl.
func Load(dir, name string) (*Dataset, error) {
	path := Path(dir, name)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ds.Name = name
	return ds, nil
}

// Read parses JSON Lines from r. Blank lines are ignored and lines that are
// not JSON objects are counted in Skipped. Records without an id get their
// 1-based position among the parsed records.
func Read(r io.Reader) (*Dataset, error) {
	ds := &Dataset{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		email, err := decode(line, len(ds.Emails)+1)
		if err != nil {
			ds.Skipped++
			continue
		}
		ds.Emails = append(ds.Emails, email)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

func decode(line []byte, position int) (Email, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return Email{}, err
	}
	if record == nil {
		return Email{}, errors.New("not an object")
	}

	email := Email{ID: strconv.Itoa(position)}
	if id, ok := record["id"]; ok && id != nil {
		email.ID = stringify(id)
	}
	email.Sender = stringify(record["sender"])
	email.Subject = stringify(record["subject"])
	email.Content = stringify(record["content"])

	for _, k := range []string{"id", "sender", "subject", "content"} {
		delete(record, k)
	}
	if len(record) > 0 {
		email.Extra = record
	}

	return email, nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
