// Package rawlog persists raw feed frames as an append-only
// newline-delimited text file and reads them back for analysis. The log
// is never truncated, rewritten or rotated here; repeated scraper runs
// accumulate history in the same file.
package rawlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Writer appends raw frames to the log file, one per line. There must be
// at most one Writer per file; the ingest path is strictly sequential.
type Writer struct {
	f *os.File
}

// OpenWriter opens the log file for appending, creating it if absent.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("rawlog: open %s: %w", path, err)
	}
	return &Writer{f: f}, nil
}

// Append writes one raw frame to the log exactly as received.
func (w *Writer) Append(frame string) error {
	_, err := fmt.Fprintln(w.f, frame)
	return err
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}

// Each reads the log at path and calls fn for every non-empty line, in
// log order. What to do with a line that fails to decode is the
// callback's business; only I/O failures end the traversal.
func Each(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("rawlog: open %s: %w", path, err)
	}
	defer f.Close()
	return EachReader(f, fn)
}

// EachReader is Each over an arbitrary reader.
func EachReader(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	// station feature collections routinely exceed the default token size
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fn(line)
	}
	return scanner.Err()
}
