// Package fs provides file-based storage for table records.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tabldoc"
)

// reservedChars are the characters not allowed in file names on common file systems.
const reservedChars = `<>:"/\|?*`

// SanitizeName converts a table name into a file-system-safe base name.
// Each reserved character is replaced with an underscore, then leading and
// trailing periods are trimmed. Everything else is kept as is.
// Example: "/BIC/AZSALES" → "_BIC_AZSALES"
func SanitizeName(name string) string {
	safe := strings.Map(func(r rune) rune {
		if strings.ContainsRune(reservedChars, r) {
			return '_'
		}
		return r
	}, name)
	return strings.Trim(safe, ".")
}

// Ensure Writer implements tabldoc.TableWriter at compile time.
var _ tabldoc.TableWriter = (*Writer)(nil)

// Writer writes table records as JSON files to a directory.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer that writes to the given directory.
// The directory is created on first write if it does not exist.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the file a table with the given name is written to.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, SanitizeName(name)+".json")
}

// WriteTable writes a record to <dir>/<sanitized name>.json, replacing any
// existing file. The file is written under a temporary name and renamed into
// place, so a failed write never leaves a truncated record behind.
func (w *Writer) WriteTable(ctx context.Context, rec *tabldoc.TableRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if SanitizeName(rec.Name) == "" {
		return tabldoc.Errorf(tabldoc.EINVALID, "table name %q has no usable file name", rec.Name)
	}

	data, err := FormatTable(rec)
	if err != nil {
		return tabldoc.Errorf(tabldoc.EINTERNAL, "encode %s: %v", rec.Name, err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return tabldoc.Errorf(tabldoc.EFILESYSTEM, "create output directory: %v", err)
	}

	path := w.Path(rec.Name)
	tmp, err := os.CreateTemp(w.dir, ".tabldoc-*.tmp")
	if err != nil {
		return tabldoc.Errorf(tabldoc.EFILESYSTEM, "create temp file: %v", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return tabldoc.Errorf(tabldoc.EFILESYSTEM, "write %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		return tabldoc.Errorf(tabldoc.EFILESYSTEM, "write %s: %v", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return tabldoc.Errorf(tabldoc.EFILESYSTEM, "chmod %s: %v", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return tabldoc.Errorf(tabldoc.EFILESYSTEM, "write %s: %v", path, err)
	}
	return nil
}

// FormatTable encodes a record as 2-space indented JSON.
// HTML characters are not escaped and a trailing newline is added.
func FormatTable(rec *tabldoc.TableRecord) ([]byte, error) {
	out := *rec
	if out.Fields == nil {
		out.Fields = []tabldoc.FieldRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadTable reads a record written by Writer. Unknown keys are rejected.
func ReadTable(path string) (*tabldoc.TableRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tabldoc.Errorf(tabldoc.EFILESYSTEM, "read %s: %v", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rec tabldoc.TableRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, tabldoc.Errorf(tabldoc.EINVALID, "decode %s: %v", path, err)
	}
	return &rec, nil
}
