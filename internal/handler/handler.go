/**
* Name: 			handler.go
* Description: 		Gin 프레임워크의 HTTP 핸들러 묶음
* Workflow: 		코디네이터, 원장(ledger), 실시간 피드를 라우트에 연결
 */

package handler

import (
	"ClassroomAnswerLog/internal/submission"
)

// MirrorStatus is the part of the remote sink the health check needs.
type MirrorStatus interface {
	Enabled() bool
}

// LedgerStatus is the part of the local sink the health check needs.
type LedgerStatus interface {
	Writable() error
}

type Handler struct {
	coordinator *submission.Coordinator
	ledger      LedgerStatus
	mirror      MirrorStatus
	students    []string
	feed        *FeedHub
}

func New(coordinator *submission.Coordinator, ledger LedgerStatus, mirror MirrorStatus, students []string, feed *FeedHub) *Handler {
	return &Handler{
		coordinator: coordinator,
		ledger:      ledger,
		mirror:      mirror,
		students:    students,
		feed:        feed,
	}
}
