package api

import (
	"time"

	"moodlog/internal/archive"
	"moodlog/internal/auth"
	"moodlog/internal/config"
	"moodlog/internal/model"
	"moodlog/internal/service"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	store       archive.Store
	authManager *auth.Manager

	// 服务层
	journalService *service.JournalService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, store archive.Store) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	journalSvc := service.NewJournalService(repo, cfg.EntriesPerPage, cfg.TrendWindowDays)

	handler := &HTTPHandler{
		cfg:            cfg,
		repo:           repo,
		store:          store,
		authManager:    authManager,
		journalService: journalSvc,
	}

	return handler, nil
}
