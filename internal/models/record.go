/**
* Name: 			record.go
* Description: 		학생 답안 제출 기록 모델
* Workflow: 		기록 생성 (타임스탬프 고정), 유효성 검사
 */

package models

import (
	"errors"
	"strings"
	"time"
)

// TimestampLayout is the sortable, second-precision form used by every sink.
// Timestamps are always rendered in UTC so the order survives DST changes.
const TimestampLayout = "2006-01-02 15:04:05"

var ErrInvalidRecord = errors.New("invalid record")

// InvalidRecordError names the first field that failed validation.
type InvalidRecordError struct {
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return "invalid record: " + e.Field + " " + e.Reason
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidRecord
}

// SubmissionRecord is one student's answer to one prompt.
// Methods take value receivers; a record is never modified after construction.
type SubmissionRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	StudentName string    `json:"student_name"`
	PromptID    string    `json:"prompt_id"`
	AnswerText  string    `json:"answer_text"`
}

// NewRecord fixes the timestamp at the moment of construction.
func NewRecord(studentName, promptID, answerText string) SubmissionRecord {
	return NewRecordAt(time.Now(), studentName, promptID, answerText)
}

func NewRecordAt(t time.Time, studentName, promptID, answerText string) SubmissionRecord {
	return SubmissionRecord{
		Timestamp:   t.UTC().Truncate(time.Second),
		StudentName: studentName,
		PromptID:    promptID,
		AnswerText:  answerText,
	}
}

// Validate checks presence only. Answer content is never judged.
func (r SubmissionRecord) Validate() error {
	if strings.TrimSpace(r.StudentName) == "" {
		return &InvalidRecordError{Field: "student_name", Reason: "must not be empty"}
	}
	if r.PromptID == "" {
		return &InvalidRecordError{Field: "prompt_id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.AnswerText) == "" {
		return &InvalidRecordError{Field: "answer_text", Reason: "must not be empty"}
	}
	return nil
}

// FormattedTimestamp renders the timestamp in UTC using TimestampLayout.
func (r SubmissionRecord) FormattedTimestamp() string {
	return r.Timestamp.UTC().Format(TimestampLayout)
}

// Fields returns the record in canonical column order:
// timestamp, student name, prompt id, answer text.
func (r SubmissionRecord) Fields() []string {
	return []string{r.FormattedTimestamp(), r.StudentName, r.PromptID, r.AnswerText}
}
