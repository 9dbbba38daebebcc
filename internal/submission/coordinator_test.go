package submission

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ClassroomAnswerLog/internal/models"
	"ClassroomAnswerLog/internal/storage"
)

type fakeLocal struct {
	mu      sync.Mutex
	records []models.SubmissionRecord
	err     error
}

func (f *fakeLocal) Append(rec models.SubmissionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeLocal) ReadAll() ([]models.SubmissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SubmissionRecord(nil), f.records...), nil
}

type fakeRemote struct {
	result models.RemoteResult
	calls  atomic.Int32
}

func (f *fakeRemote) Mirror(ctx context.Context, rec models.SubmissionRecord) models.RemoteResult {
	f.calls.Add(1)
	return f.result
}

// stuckRemote ignores its context and only returns once released.
type stuckRemote struct {
	release chan struct{}
}

func (s *stuckRemote) Mirror(ctx context.Context, rec models.SubmissionRecord) models.RemoteResult {
	<-s.release
	return models.Mirrored()
}

var clock = func() time.Time {
	return time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)
}

func TestSubmit_NoRemoteConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.tsv")
	ledger, err := storage.OpenLedger(path)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator(ledger, nil, WithClock(clock))

	out := c.Submit(context.Background(), "Ada", "coins_key_insight", "Because total heads = H stays fixed")

	if !out.Saved() {
		t.Fatalf("expected saved, got %+v", out)
	}
	if out.Local.Status != models.LocalAppended || out.Remote.Status != models.RemoteUnavailable {
		t.Fatalf("expected {Appended, RemoteUnavailable}, got {%s, %s}", out.Local.Status, out.Remote.Status)
	}
	if out.Message() != "saved locally only" {
		t.Errorf("unexpected message %q", out.Message())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := string(raw)
	if !strings.HasSuffix(line, "coins_key_insight\tBecause total heads = H stays fixed\n") {
		t.Fatalf("unexpected line %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", line)
	}
}

func TestSubmit_InvalidRecordWritesNothing(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{result: models.Mirrored()}
	c := NewCoordinator(local, remote)

	out := c.Submit(context.Background(), "  ", "p1", "answer")

	if out.State != StateInvalid || !errors.Is(out.Invalid, models.ErrInvalidRecord) {
		t.Fatalf("expected invalid outcome, got %+v", out)
	}
	if out.Saved() || out.Message() != "invalid" {
		t.Errorf("invalid record must not be reported as saved")
	}
	if len(local.records) != 0 || remote.calls.Load() != 0 {
		t.Fatalf("no sink may be written for an invalid record")
	}
}

func TestSubmit_LocalFailureIsOverallFailure(t *testing.T) {
	local := &fakeLocal{err: &storage.LocalWriteError{Path: "/ro/submissions.tsv", Cause: os.ErrPermission}}
	remote := &fakeRemote{result: models.Mirrored()}
	c := NewCoordinator(local, remote)

	out := c.Submit(context.Background(), "Ada", "p1", "answer")

	if out.Saved() {
		t.Fatal("submission must fail when the local append fails")
	}
	if out.State != StateLocalFailed || out.Message() != "failed" {
		t.Errorf("unexpected state %s / message %q", out.State, out.Message())
	}
	if !errors.Is(out.Local.Err, storage.ErrLocalWrite) {
		t.Errorf("expected local cause to be preserved, got %v", out.Local.Err)
	}
	if remote.calls.Load() != 1 || out.Remote.Status != models.RemoteMirrored {
		t.Errorf("remote should still be attempted once, got calls=%d remote=%+v", remote.calls.Load(), out.Remote)
	}
}

func TestSubmit_RemoteFailureStillSaved(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{result: models.RemoteFailure(models.FailureNotFound, "resolve: sheet not found: Requested entity was not found.")}
	c := NewCoordinator(local, remote)

	out := c.Submit(context.Background(), "Ada", "p1", "answer")

	if !out.Saved() {
		t.Fatal("remote failure must not fail the submission")
	}
	if out.State != StateRemoteFailed {
		t.Errorf("expected remote_failed state, got %s", out.State)
	}
	if out.Remote.Kind != models.FailureNotFound || !strings.Contains(out.Remote.Cause, "sheet not found") {
		t.Errorf("remote cause not preserved: %+v", out.Remote)
	}
	if out.Message() != "saved locally only" {
		t.Errorf("unexpected message %q", out.Message())
	}
}

func TestSubmit_RemoteOK(t *testing.T) {
	c := NewCoordinator(&fakeLocal{}, &fakeRemote{result: models.Mirrored()})

	out := c.Submit(context.Background(), "Ada", "p1", "answer")

	if out.State != StateRemoteOK || out.Message() != "saved" {
		t.Fatalf("expected saved, got %s / %q", out.State, out.Message())
	}
}

func TestSubmit_RemoteTimeoutIsBounded(t *testing.T) {
	remote := &stuckRemote{release: make(chan struct{})}
	defer close(remote.release)
	c := NewCoordinator(&fakeLocal{}, remote, WithRemoteTimeout(30*time.Millisecond))

	start := time.Now()
	out := c.Submit(context.Background(), "Ada", "p1", "answer")

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("submit blocked for %v", elapsed)
	}
	if !out.Saved() {
		t.Fatal("a remote timeout must not fail the submission")
	}
	if out.Remote.Status != models.RemoteFailed || out.Remote.Kind != models.FailureTimeout {
		t.Fatalf("expected RemoteWriteFailure(timeout), got %+v", out.Remote)
	}
}

func TestSubmit_ConcurrentSubmissions(t *testing.T) {
	ledger, err := storage.OpenLedger(filepath.Join(t.TempDir(), "submissions.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator(ledger, nil)

	const students = 50
	var wg sync.WaitGroup
	var saved atomic.Int32
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := c.Submit(context.Background(), fmt.Sprintf("student-%d", i), "p1", fmt.Sprintf("answer\t%d\nline", i))
			if out.Saved() {
				saved.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if saved.Load() != students {
		t.Fatalf("expected %d saved submissions, got %d", students, saved.Load())
	}
	n, err := ledger.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != students {
		t.Fatalf("expected %d lines, got %d", students, n)
	}
	if _, err := ledger.ReadAll(); err != nil {
		t.Fatalf("ledger has corrupted lines: %v", err)
	}
}

func TestSubmit_NotifiesObservers(t *testing.T) {
	var got []Outcome
	c := NewCoordinator(&fakeLocal{}, nil, WithObserver(func(o Outcome) { got = append(got, o) }))

	c.Submit(context.Background(), "Ada", "p1", "answer")
	c.Submit(context.Background(), "", "p1", "answer")

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if !got[0].Saved() || got[1].Invalid == nil {
		t.Errorf("unexpected outcomes %+v", got)
	}
}
