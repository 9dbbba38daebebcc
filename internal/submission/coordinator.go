/**
* Name: 			coordinator.go
* Description: 		로컬(필수) + 원격(best-effort) 이중 저장 조정
* Workflow: 		검증 → 로컬 append → 원격 미러(시간 제한) → 결과 반환
 */

package submission

import (
	"context"
	"time"

	"ClassroomAnswerLog/internal/models"
	"ClassroomAnswerLog/pkg/logger"
	"ClassroomAnswerLog/pkg/monitoring"

	"go.uber.org/zap"
)

const DefaultRemoteTimeout = 5 * time.Second

// LocalSink is the authoritative store. *storage.Ledger satisfies it.
type LocalSink interface {
	Append(rec models.SubmissionRecord) error
	ReadAll() ([]models.SubmissionRecord, error)
}

// RemoteSink is the advisory mirror. *sheets.Mirror satisfies it.
// Implementations report every failure as a value.
type RemoteSink interface {
	Mirror(ctx context.Context, rec models.SubmissionRecord) models.RemoteResult
}

// Observer is notified with the outcome of every submission.
type Observer func(Outcome)

type Coordinator struct {
	local         LocalSink
	remote        RemoteSink
	remoteTimeout time.Duration
	now           func() time.Time
	observers     []Observer
}

type Option func(*Coordinator)

func WithRemoteTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.remoteTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		c.observers = append(c.observers, o)
	}
}

// NewCoordinator wires the two sinks. A nil remote behaves as an
// unconfigured mirror.
func NewCoordinator(local LocalSink, remote RemoteSink, opts ...Option) *Coordinator {
	if remote == nil {
		remote = disabledRemote{}
	}
	c := &Coordinator{
		local:         local,
		remote:        remote,
		remoteTimeout: DefaultRemoteTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit builds a record stamped with the coordinator clock and persists it.
func (c *Coordinator) Submit(ctx context.Context, studentName, promptID, answerText string) Outcome {
	rec := models.NewRecordAt(c.now(), studentName, promptID, answerText)
	return c.SubmitRecord(ctx, rec)
}

// SubmitRecord makes one pass through
// Validating -> WritingLocal -> {LocalFailed | WritingRemote -> {RemoteOk | RemoteFailed}}.
// Only the local result decides whether the submission counts as saved.
func (c *Coordinator) SubmitRecord(ctx context.Context, rec models.SubmissionRecord) Outcome {
	out := Outcome{Record: rec, State: StateValidating}

	if err := rec.Validate(); err != nil {
		out.State = StateInvalid
		out.Invalid = err
		out.Local = models.LocalResult{Status: models.LocalSkipped}
		out.Remote = models.RemoteResult{Status: models.RemoteSkipped}
		logger.Log.Info("Coordinator.Submit(): rejected invalid record", zap.Error(err))
		c.notify(out)
		return out
	}

	out.State = StateWritingLocal
	if err := c.local.Append(rec); err != nil {
		out.Local = models.LocalResult{Status: models.LocalFailed, Err: err}
		logger.Log.Error("Coordinator.Submit(): local append failed",
			zap.String("student", rec.StudentName),
			zap.String("prompt_id", rec.PromptID),
			zap.Error(err),
		)
	} else {
		out.Local = models.LocalResult{Status: models.LocalAppended}
	}

	// Remote is attempted even when local failed, for visibility only.
	if out.Local.OK() {
		out.State = StateWritingRemote
	}
	out.Remote = c.mirror(ctx, rec)

	switch {
	case !out.Local.OK():
		out.State = StateLocalFailed
	case out.Remote.Status == models.RemoteFailed:
		out.State = StateRemoteFailed
	default:
		out.State = StateRemoteOK
	}

	logger.Log.Info("Coordinator.Submit(): submission processed",
		zap.String("student", rec.StudentName),
		zap.String("prompt_id", rec.PromptID),
		zap.String("local", string(out.Local.Status)),
		zap.String("remote", string(out.Remote.Status)),
		zap.String("remote_cause", out.Remote.Cause),
	)
	c.notify(out)
	return out
}

// mirror bounds the remote attempt. A sink that ignores ctx is abandoned
// when the deadline passes; its eventual result is discarded.
func (c *Coordinator) mirror(parent context.Context, rec models.SubmissionRecord) models.RemoteResult {
	ctx, cancel := context.WithTimeout(parent, c.remoteTimeout)
	defer cancel()

	done := make(chan models.RemoteResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- models.RemoteFailure(models.FailureUnknown, "remote sink panicked")
			}
		}()
		done <- c.remote.Mirror(ctx, rec)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		if parent.Err() == context.Canceled {
			return models.RemoteFailure(models.FailureTransient, "canceled")
		}
		return models.RemoteFailure(models.FailureTimeout, "timeout after "+c.remoteTimeout.String())
	}
}

func (c *Coordinator) notify(out Outcome) {
	monitoring.ObserveSubmission(string(out.Local.Status), string(out.Remote.Status))
	for _, o := range c.observers {
		o(out)
	}
}

type disabledRemote struct{}

func (disabledRemote) Mirror(context.Context, models.SubmissionRecord) models.RemoteResult {
	return models.Unavailable()
}
