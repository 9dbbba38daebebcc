package handler

import (
	"net/http"
	"strings"

	"ClassroomAnswerLog/internal/middleware"
	"ClassroomAnswerLog/internal/storage"
	"ClassroomAnswerLog/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Submit godoc
// @Summary      답안 제출 (Submit answer)
// @Description  로컬 원장에 한 줄을 기록하고 Google Sheets에 미러링을 시도합니다.
// @Description  로컬 기록이 성공하면 원격 결과와 관계없이 저장된 것으로 간주합니다.
// @Tags         Submission
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.SubmitRequest true "프롬프트 ID와 답안"
// @Success      201 {object} handler.SubmissionResponse "saved / saved locally only"
// @Failure      400 {object} handler.SubmissionResponse "invalid"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      429 {object} handler.ErrorResponse "요청 과다"
// @Failure      500 {object} handler.SubmissionResponse "failed (로컬 기록 실패)"
// @Router       /api/submissions [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	studentName := c.GetString(middleware.ContextName)
	out := h.coordinator.Submit(c.Request.Context(), studentName, req.PromptID, req.AnswerText)
	resp := newSubmissionResponse(out)

	switch {
	case out.Invalid != nil:
		c.JSON(http.StatusBadRequest, resp)
	case !out.Saved():
		c.JSON(http.StatusInternalServerError, resp)
	default:
		c.JSON(http.StatusCreated, resp)
	}
}

// GetProgress godoc
// @Summary      진행 현황 (Progress overview)
// @Description  명단의 각 학생이 해당 프롬프트에 답했는지 로컬 원장 기준으로 반환합니다.
// @Tags         Submission
// @Produce      json
// @Security     BearerAuth
// @Param        prompt   query     string  true   "프롬프트 ID"
// @Param        students query     string  false  "쉼표로 구분한 학생 목록 (기본값: 설정된 명단)"
// @Success      200      {object}  submission.Progress
// @Failure      400      {object}  handler.ErrorResponse
// @Failure      500      {object}  handler.ErrorResponse
// @Router       /api/progress [get]
func (h *Handler) GetProgress(c *gin.Context) {
	promptID := c.Query("prompt")
	if promptID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	students := h.students
	if raw := c.Query("students"); raw != "" {
		students = splitNames(raw)
	}

	progress, err := h.coordinator.Progress(promptID, students)
	if err != nil {
		logger.Log.Error("GetProgress(): failed to read ledger", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read submissions"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ListSubmissions godoc
// @Summary      전체 제출 기록 조회 (교사 전용)
// @Description  로컬 원장의 모든 제출 기록을 기록 순서대로 반환합니다.
// @Tags         Teacher
// @Produce      json
// @Security     BearerAuth
// @Param        prompt query    string false "프롬프트 ID로 필터"
// @Success      200    {object} handler.SubmissionListResponse
// @Failure      401    {object} handler.ErrorResponse
// @Failure      403    {object} handler.ErrorResponse
// @Failure      500    {object} handler.ErrorResponse
// @Router       /api/teacher/submissions [get]
func (h *Handler) ListSubmissions(c *gin.Context) {
	records, err := h.coordinator.Records()
	if err != nil {
		logger.Log.Error("ListSubmissions(): failed to read ledger", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read submissions"})
		return
	}

	if promptID := c.Query("prompt"); promptID != "" {
		filtered := records[:0]
		for _, r := range records {
			if r.PromptID == promptID {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	c.JSON(http.StatusOK, SubmissionListResponse{Count: len(records), Submissions: records})
}

// Health godoc
// @Summary      헬스 체크
// @Description  로컬 원장 쓰기 가능 여부와 원격 미러 활성화 여부를 반환합니다.
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Failure      503 {object} handler.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Ledger: "up", Mirror: "disabled"}
	if h.mirror != nil && h.mirror.Enabled() {
		resp.Mirror = "enabled"
	}
	if err := h.ledger.Writable(); err != nil {
		logger.Log.Error("Health(): ledger not writable", zap.Error(err))
		resp.Status = "degraded"
		resp.Ledger = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

var _ LedgerStatus = (*storage.Ledger)(nil)
