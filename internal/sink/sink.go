package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Sink accepts one fully rendered report. The core never streams
// partial output; a write failure is a run failure.
type Sink interface {
	Write(ctx context.Context, text string) error
}

// FileSink writes the report to a file. The write goes through a
// uuid-named temp file and a rename, so a failure cannot leave a
// truncated report in place of a previous good one.
type FileSink struct {
	Path string
}

// NewFileSink creates a file-backed sink
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// Write replaces the target file with the rendered text.
func (s *FileSink) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.Path), uuid.New()))

	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write temp report: %w", err)
	}

	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace report: %w", err)
	}

	return nil
}

// BufferSink keeps the report in memory. Used by the HTTP handlers and
// in tests.
type BufferSink struct {
	Text string
}

// Write stores the rendered text.
func (s *BufferSink) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Text = text
	return nil
}
