package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"ClassroomAnswerLog/internal/auth"
	"ClassroomAnswerLog/internal/storage"
	"ClassroomAnswerLog/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// StudentLogin godoc
// @Summary      학생 세션 시작 (Student login)
// @Description  학생 이름으로 세션 토큰을 발급합니다. 명단 확인은 하지 않습니다.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request body handler.StudentLoginRequest true "학생 이름"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /login [post]
func (h *Handler) StudentLogin(c *gin.Context) {
	var req StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// " "으로 입력되는 케이스 방지
	name := strings.TrimSpace(req.StudentName)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student name cannot be empty"})
		return
	}

	token, err := auth.GenerateToken(name, auth.RoleStudent)
	if err != nil {
		logger.Log.Error("StudentLogin(): failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	logger.Log.Info("StudentLogin(): student logged in", zap.String("student", name))
	c.JSON(http.StatusOK, LoginSuccessResponse{Token: token, Name: name, Role: auth.RoleStudent})
}

// TeacherLogin godoc
// @Summary      교사 로그인 (Teacher login)
// @Description  교사 계정으로 로그인하고 제출 기록 조회용 토큰을 발급받습니다.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request body handler.TeacherLoginRequest true "교사 계정 정보"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      401 {object} handler.ErrorResponse "인증 실패 (자격 증명 오류)"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /teacher/login [post]
func (h *Handler) TeacherLogin(c *gin.Context) {
	var req TeacherLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	teacher, err := storage.GetTeacherByUsername(req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Log.Error("TeacherLogin(): GetTeacherByUsername failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(teacher.Username, auth.RoleTeacher)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, LoginSuccessResponse{Token: token, Name: teacher.Username, Role: auth.RoleTeacher})
}
