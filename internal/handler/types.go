package handler

import (
	"errors"
	"os"
	"syscall"

	"ClassroomAnswerLog/internal/models"
	"ClassroomAnswerLog/internal/submission"
)

// /login 요청 바디
type StudentLoginRequest struct {
	StudentName string `json:"student_name" example:"Ada"`
}

// /teacher/login 요청 바디
type TeacherLoginRequest struct {
	Username string `json:"username" example:"teacher"`
	Password string `json:"password" example:"password123"`
}

type LoginSuccessResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Name  string `json:"name" example:"Ada"`
	Role  string `json:"role" example:"student"`
}

// /api/submissions 요청 바디, 학생 이름은 토큰에서 가져옴
type SubmitRequest struct {
	PromptID   string `json:"prompt_id" example:"coins_key_insight"`
	AnswerText string `json:"answer_text" example:"Because total heads = H stays fixed"`
}

type SinkView struct {
	Status string `json:"status" example:"appended"`
	Kind   string `json:"kind,omitempty" example:""`
	Cause  string `json:"cause,omitempty" example:""`
}

// SubmissionResponse is the outcome view rendered by the form.
type SubmissionResponse struct {
	Message string                   `json:"message" example:"saved locally only"`
	Saved   bool                     `json:"saved" example:"true"`
	State   string                   `json:"state" example:"remote_ok"`
	Error   string                   `json:"error,omitempty"`
	Record  *models.SubmissionRecord `json:"record,omitempty"`
	Local   SinkView                 `json:"local"`
	Remote  SinkView                 `json:"remote"`
}

type SubmissionListResponse struct {
	Count       int                       `json:"count"`
	Submissions []models.SubmissionRecord `json:"submissions"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Ledger string `json:"ledger" example:"up"`
	Mirror string `json:"mirror" example:"disabled"`
}

func newSubmissionResponse(out submission.Outcome) SubmissionResponse {
	resp := SubmissionResponse{
		Message: out.Message(),
		Saved:   out.Saved(),
		State:   string(out.State),
		Local:   SinkView{Status: string(out.Local.Status)},
		Remote: SinkView{
			Status: string(out.Remote.Status),
			Kind:   string(out.Remote.Kind),
			Cause:  out.Remote.Cause,
		},
	}
	if out.Invalid != nil {
		resp.Error = out.Invalid.Error()
	} else {
		rec := out.Record
		resp.Record = &rec
	}
	if out.Local.Err != nil {
		resp.Local.Cause = localCause(out.Local.Err)
	}
	return resp
}

// localCause summarizes a ledger failure for clients. The full error, with the
// server path, is only logged.
func localCause(err error) string {
	switch {
	case errors.Is(err, os.ErrPermission):
		return "local store: permission denied"
	case errors.Is(err, syscall.ENOSPC):
		return "local store: disk full"
	default:
		return "local store: write failed"
	}
}
