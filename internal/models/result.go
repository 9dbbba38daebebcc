package models

// LocalStatus is the outcome of the authoritative local append.
type LocalStatus string

const (
	LocalSkipped  LocalStatus = "skipped" // record was invalid, nothing written
	LocalAppended LocalStatus = "appended"
	LocalFailed   LocalStatus = "local_write_failure"
)

type LocalResult struct {
	Status LocalStatus `json:"status"`
	Err    error       `json:"-"`
}

func (r LocalResult) OK() bool {
	return r.Status == LocalAppended
}

// RemoteStatus is the outcome of the best-effort spreadsheet mirror.
type RemoteStatus string

const (
	RemoteSkipped     RemoteStatus = "skipped"
	RemoteMirrored    RemoteStatus = "mirrored"
	RemoteUnavailable RemoteStatus = "remote_unavailable"
	RemoteFailed      RemoteStatus = "remote_write_failure"
)

// FailureKind classifies a remote failure for display.
type FailureKind string

const (
	FailureAuth       FailureKind = "auth"
	FailurePermission FailureKind = "permission"
	FailureNotFound   FailureKind = "not_found"
	FailureTransient  FailureKind = "transient"
	FailureTimeout    FailureKind = "timeout"
	FailureUnknown    FailureKind = "unknown"
)

type RemoteResult struct {
	Status RemoteStatus `json:"status"`
	Kind   FailureKind  `json:"kind,omitempty"`
	Cause  string       `json:"cause,omitempty"`
}

func Mirrored() RemoteResult {
	return RemoteResult{Status: RemoteMirrored}
}

func Unavailable() RemoteResult {
	return RemoteResult{Status: RemoteUnavailable}
}

func RemoteFailure(kind FailureKind, cause string) RemoteResult {
	return RemoteResult{Status: RemoteFailed, Kind: kind, Cause: cause}
}
