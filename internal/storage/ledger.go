/**
* Name: 			ledger.go
* Description: 		로컬 append-only 제출 로그 (기준 저장소)
* Workflow: 		목적지별 락 → O_APPEND 열기 → 한 줄 단일 Write → 닫기
 */

package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"ClassroomAnswerLog/internal/models"
	"ClassroomAnswerLog/pkg/logger"

	"go.uber.org/zap"
)

var ErrLocalWrite = errors.New("local write failure")

// LocalWriteError carries the destination and the underlying cause.
type LocalWriteError struct {
	Path  string
	Cause error
}

func (e *LocalWriteError) Error() string {
	return fmt.Sprintf("local write failure (%s): %v", e.Path, e.Cause)
}

func (e *LocalWriteError) Unwrap() []error {
	return []error{ErrLocalWrite, e.Cause}
}

// One mutex per cleaned destination path, shared by every Ledger that
// points at the same file.
var (
	destLocksMu sync.Mutex
	destLocks   = make(map[string]*sync.Mutex)
)

func lockFor(path string) *sync.Mutex {
	destLocksMu.Lock()
	defer destLocksMu.Unlock()
	mu, ok := destLocks[path]
	if !ok {
		mu = &sync.Mutex{}
		destLocks[path] = mu
	}
	return mu
}

type Ledger struct {
	path  string
	mu    *sync.Mutex
	fsync bool
}

type LedgerOption func(*Ledger)

// WithFsync syncs the file to disk after every append.
func WithFsync(enabled bool) LedgerOption {
	return func(l *Ledger) {
		l.fsync = enabled
	}
}

func OpenLedger(path string, opts ...LedgerOption) (*Ledger, error) {
	if path == "" {
		return nil, errors.New("OpenLedger(): empty path")
	}
	clean := filepath.Clean(path)
	if abs, err := filepath.Abs(clean); err == nil {
		clean = abs
	}
	if err := os.MkdirAll(filepath.Dir(clean), 0755); err != nil {
		return nil, fmt.Errorf("OpenLedger(): failed to create directory: %w", err)
	}

	l := &Ledger{path: clean, mu: lockFor(clean)}
	for _, opt := range opts {
		opt(l)
	}
	logger.Log.Info("OpenLedger(): ledger ready", zap.String("path", clean), zap.Bool("fsync", l.fsync))
	return l, nil
}

func (l *Ledger) Path() string {
	return l.path
}

// Append writes rec as exactly one line. The file is only ever opened for
// appending, and the whole line goes out in a single write under the
// destination lock. If a crash left the file without a final newline, the
// torn fragment is first closed with tornTerminator in that same write.
func (l *Ledger) Append(rec models.SubmissionRecord) error {
	line := EncodeLine(rec)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return &LocalWriteError{Path: l.path, Cause: err}
	}

	torn, err := endsTorn(f)
	if err == nil && torn {
		logger.Log.Warn("Ledger.Append(): isolating torn trailing line", zap.String("path", l.path))
		line = append([]byte(tornTerminator), line...)
	}

	var n int
	if err == nil {
		n, err = f.Write(line)
	}
	if err == nil && n < len(line) {
		err = io.ErrShortWrite
	}
	if err == nil && l.fsync {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &LocalWriteError{Path: l.path, Cause: err}
	}
	return nil
}

// tornTerminator ends a torn fragment. The extra field and the invalid escape
// keep the fragment from ever decoding as a record, whatever was cut off.
const tornTerminator = "\t\\!\n"

// endsTorn reports whether a non-empty file lacks a final newline.
func endsTorn(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// ReadAll returns every well-formed record in append order. Malformed lines
// are logged and skipped; Scan reports how many.
func (l *Ledger) ReadAll() ([]models.SubmissionRecord, error) {
	records, _, err := l.Scan()
	return records, err
}

// Scan is ReadAll plus the number of skipped lines. A trailing line without a
// newline is a torn write in progress and is neither returned nor counted.
func (l *Ledger) Scan() ([]models.SubmissionRecord, int, error) {
	records := make([]models.SubmissionRecord, 0)
	skipped := 0
	err := l.scan(func(lineNo int, line string) error {
		rec, err := DecodeLine(line)
		if err != nil {
			skipped++
			logger.Log.Warn("Ledger.Scan(): skipping malformed line",
				zap.String("path", l.path),
				zap.Int("line", lineNo),
				zap.Error(err),
			)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return records, skipped, nil
}

// Count returns the number of complete lines.
func (l *Ledger) Count() (int, error) {
	n := 0
	err := l.scan(func(int, string) error {
		n++
		return nil
	})
	return n, err
}

// Writable reports whether the destination can currently be opened for append.
func (l *Ledger) Writable() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &LocalWriteError{Path: l.path, Cause: err}
	}
	return f.Close()
}

func (l *Ledger) scan(fn func(lineNo int, line string) error) error {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			if line != "" {
				logger.Log.Warn("Ledger.scan(): ignoring torn trailing line", zap.String("path", l.path), zap.Int("line", lineNo))
			}
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
}
