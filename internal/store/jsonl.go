package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// appendLog is a JSON-Lines file that only ever grows. Each record is one
// line written with a single Write call.
type appendLog[T any] struct {
	path  string
	check func(*T) error
	mu    sync.Mutex
}

func newAppendLog[T any](path string, check func(*T) error) *appendLog[T] {
	return &appendLog[T]{path: path, check: check}
}

func (l *appendLog[T]) append(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record for %s: %w", l.path, err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), dirPerm); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", l.path, err)
	}

	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", l.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", l.path, err)
	}
	return nil
}

// list returns every record in file order. A missing file is an empty log.
func (l *appendLog[T]) list(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer f.Close()

	records := []T{}
	r := bufio.NewReader(f)
	lineNo := 0
	for {
		raw, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", l.path, readErr)
		}
		if len(raw) > 0 {
			lineNo++
			if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 {
				rec, err := l.decode(trimmed)
				if err != nil {
					return nil, &CorruptionError{Path: l.path, Line: lineNo, Err: err}
				}
				records = append(records, rec)
			}
		}
		if readErr != nil {
			break
		}
	}
	return records, nil
}

func (l *appendLog[T]) decode(line []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(line, &rec); err != nil {
		return rec, err
	}
	if l.check != nil {
		if err := l.check(&rec); err != nil {
			return rec, err
		}
	}
	return rec, nil
}
