package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Source yields one collection of untyped input records. Any failure to
// open or parse the input makes the whole source unavailable and aborts
// the run; there is no partial read.
type Source interface {
	Records(ctx context.Context) ([]interface{}, error)
}

// FileSource reads a JSON array of records from a file on disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Records loads and parses the file. Numbers are decoded as
// json.Number so the validator can check integers exactly.
func (s *FileSource) Records(ctx context.Context) ([]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var records []interface{}
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	return records, nil
}

// StaticSource serves records already held in memory. Used by the HTTP
// handlers, which receive both collections in the request itself.
type StaticSource struct {
	records []interface{}
}

// NewStaticSource creates an in-memory source
func NewStaticSource(records []interface{}) *StaticSource {
	return &StaticSource{records: records}
}

// Records returns the held records.
func (s *StaticSource) Records(ctx context.Context) ([]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.records, nil
}
