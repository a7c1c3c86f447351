// Package export encodes customer batches as tables and places them on disk.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmehdipour/custgen/internal/model"
	"github.com/spf13/afero"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown output format")

func (f Format) String() string { return string(f) }

// ParseFormat normalizes input; empty => csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext is the file extension, dot included.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes records with a header row in model.Columns order.
func Encode(w io.Writer, format Format, records []model.Customer) error {
	switch format {
	case FormatCSV:
		return EncodeCSV(w, records)
	case FormatXLSX:
		return EncodeXLSX(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Result describes a written file.
type Result struct {
	Path     string
	Bytes    int64
	Checksum string // sha256 hex
}

// Checksum returns the sha256 hex digest of b.
func Checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// WriteFile encodes the whole batch in memory, then writes it to dir/name via a
// temp file and rename, so a failed run never leaves a partial table behind.
func WriteFile(fs afero.Fs, dir, name string, format Format, records []model.Customer) (Result, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, format, records); err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", format, err)
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	tmp, err := afero.TempFile(fs, dir, "."+name+".*.tmp")
	if err != nil {
		return Result{}, fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return Result{}, fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return Result{}, fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return Result{}, fmt.Errorf("rename to %s: %w", path, err)
	}

	return Result{
		Path:     path,
		Bytes:    int64(buf.Len()),
		Checksum: Checksum(buf.Bytes()),
	}, nil
}
