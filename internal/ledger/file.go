package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Zachkp/portfolio/internal/atomicfile"
)

// File stores the ledger as a pretty-printed JSON document:
//
//	{
//	  "count": 2,
//	  "visitors": ["1.2.3.4", "5.6.7.8"]
//	}
//
// Every write goes to a temp file in the same directory which is synced and
// renamed over the target, so readers never see a half-written record.
// File does no locking across Load and Save.
type File struct {
	path string
}

// NewFile returns a store backed by the file at path. The file and its
// directory are created on first Load.
func NewFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ledger path is required")
	}
	return &File{path: path}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the record, writing the initial empty record first if the file
// does not exist yet.
func (f *File) Load(ctx context.Context) (*Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		initial := newLedger()
		if err := f.write(initial); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", f.path, err)
		}
		return initial, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	l, err := decodeLedger(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return l, nil
}

// Save overwrites the file with l.
func (f *File) Save(ctx context.Context, l *Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.write(l)
}

// Reset overwrites the file with the initial empty record.
func (f *File) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.write(newLedger())
}

// Close is a no-op; File holds no open handles between calls.
func (f *File) Close() error {
	return nil
}

func (f *File) write(l *Ledger) error {
	if l.Visitors == nil {
		l.Visitors = []string{}
	}
	data, err := marshalStable(l)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := atomicfile.Write(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

func decodeLedger(data []byte) (*Ledger, error) {
	var l Ledger
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content", ErrCorrupt)
	}
	if l.Visitors == nil {
		l.Visitors = []string{}
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func marshalStable(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
