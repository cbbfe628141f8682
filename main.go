package main

import (
	"context"
	"net/http"

	"github.com/despachos/equipcheck/internal/checklist"
	"github.com/despachos/equipcheck/internal/config"
	"github.com/despachos/equipcheck/internal/db"
	"github.com/despachos/equipcheck/internal/handler"
	"github.com/despachos/equipcheck/internal/logger"
	"github.com/despachos/equipcheck/internal/repository"
	"github.com/despachos/equipcheck/internal/router"
	"github.com/despachos/equipcheck/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.GelfAddr)

	// Checklist definitions
	defs, err := checklist.Load(cfg.ChecklistPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load checklist definitions")
	}
	log.Info().Int("equipment", len(defs.Equipment)).Str("path", cfg.ChecklistPath).Msg("checklist definitions loaded")

	// Database
	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	log.Info().Str("path", cfg.DBPath).Msg("database ready")

	// Repositories
	userRepo := repository.NewUserRepo(gdb)
	subRepo := repository.NewSubmissionRepo(gdb)
	photoRepo := repository.NewPhotoRepo(gdb)
	apprRepo := repository.NewApprovalRepo(gdb)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	userSvc := service.NewUserService(userRepo, cfg.AdminUser)
	subSvc := service.NewSubmissionService(subRepo, photoRepo, apprRepo, defs)
	apprSvc := service.NewApprovalService(subRepo, photoRepo, apprRepo, log)
	dashSvc := service.NewDashboardService(subRepo)
	exportSvc := service.NewExportService(subRepo, apprRepo)

	// Seed default supervisor on an empty users table
	if err := authSvc.SeedAdmin(context.Background(), cfg.AdminUser, cfg.AdminPass); err != nil {
		log.Warn().Err(err).Msg("failed to seed admin user")
	}

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	equipH := handler.NewEquipmentHandler(defs)
	subH := handler.NewSubmissionHandler(subSvc, apprSvc, photoRepo, userRepo, cfg.MaxUploadMB)
	apprH := handler.NewApprovalHandler(apprSvc, userRepo)
	dashH := handler.NewDashboardHandler(dashSvc)
	exportH := handler.NewExportHandler(exportSvc)
	adminH := handler.NewAdminHandler(gdb)

	// Router
	r := router.New(cfg.JWTSecret, log, authH, userH, equipH, subH, apprH, dashH, exportH, adminH)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("equipcheck server starting")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
