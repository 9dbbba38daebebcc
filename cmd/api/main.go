// @title           Classroom Answer Log API
// @version         1.0
// @description     학생 답안을 로컬 원장에 기록하고 Google Sheets에 미러링합니다.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "ClassroomAnswerLog/docs"
	"ClassroomAnswerLog/internal/auth"
	"ClassroomAnswerLog/internal/config"
	"ClassroomAnswerLog/internal/handler"
	"ClassroomAnswerLog/internal/router"
	"ClassroomAnswerLog/internal/sheets"
	"ClassroomAnswerLog/internal/storage"
	"ClassroomAnswerLog/internal/submission"
	"ClassroomAnswerLog/pkg/logger"
	"ClassroomAnswerLog/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("main(): %v", err)
	}

	logger.InitLogger(logger.Options{File: cfg.Log.File, Debug: cfg.IsDebug()})
	defer logger.Sync()
	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
	monitoring.Init()
	auth.Init(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if err := storage.InitDB(cfg.Database.Path); err != nil {
		logger.Log.Fatal("main(): database init failed", zap.Error(err))
	}
	defer storage.CloseDB()
	if created, err := storage.EnsureTeacher(cfg.Teacher.Username, cfg.Teacher.Password); err != nil {
		logger.Log.Fatal("main(): failed to seed teacher account", zap.Error(err))
	} else if created {
		logger.Log.Info("main(): teacher account created", zap.String("username", cfg.Teacher.Username))
	}

	ledger, err := storage.OpenLedger(cfg.Ledger.Path, storage.WithFsync(cfg.Ledger.Fsync))
	if err != nil {
		logger.Log.Fatal("main(): failed to open ledger", zap.Error(err))
	}

	// 원격 미러 활성화 여부는 여기서 한 번만 결정됨
	mirrorCfg, err := cfg.MirrorConfig()
	if err != nil {
		logger.Log.Warn("main(): Google Sheets logging unavailable", zap.Error(err))
	}
	mirror := sheets.New(mirrorCfg)

	feed := handler.NewFeedHub()
	coordinator := submission.NewCoordinator(ledger, mirror,
		submission.WithRemoteTimeout(cfg.Sheets.Timeout),
		submission.WithObserver(feed.Publish),
	)

	h := handler.New(coordinator, ledger, mirror, cfg.Students, feed)
	engine := router.New(h, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RatePerSecond:  cfg.RateLimit.PerSecond,
		RateBurst:      cfg.RateLimit.Burst,
		LoginPerSecond: cfg.RateLimit.LoginPerSecond,
		LoginBurst:     cfg.RateLimit.LoginBurst,
	})

	server := &http.Server{
		Addr:    cfg.GetAddr(),
		Handler: engine,
	}

	go func() {
		logger.Log.Info("main(): listening", zap.String("addr", server.Addr), zap.Bool("mirror", mirror.Enabled()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("main(): server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("main(): shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("main(): server forced to shutdown", zap.Error(err))
	}
}
