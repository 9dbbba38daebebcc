package submission

import (
	"ClassroomAnswerLog/internal/models"
)

// State is the terminal (or in-flight) step of one submission.
type State string

const (
	StateValidating    State = "validating"
	StateInvalid       State = "invalid"
	StateWritingLocal  State = "writing_local"
	StateLocalFailed   State = "local_failed"
	StateWritingRemote State = "writing_remote"
	StateRemoteOK      State = "remote_ok"
	StateRemoteFailed  State = "remote_failed"
)

// Outcome is returned by value; the coordinator keeps no copy.
type Outcome struct {
	Record  models.SubmissionRecord
	State   State
	Invalid error
	Local   models.LocalResult
	Remote  models.RemoteResult
}

// Saved is true exactly when the authoritative local append succeeded.
func (o Outcome) Saved() bool {
	return o.Invalid == nil && o.Local.OK()
}

// Message is the short status shown to the student.
func (o Outcome) Message() string {
	switch {
	case o.Invalid != nil:
		return "invalid"
	case !o.Local.OK():
		return "failed"
	case o.Remote.Status == models.RemoteMirrored:
		return "saved"
	default:
		return "saved locally only"
	}
}
