package container

import (
	"database/sql"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/assets"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/imagestore"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/rate_limiter"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/reports"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/repository"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/settings"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/security"
)

const (
	defaultUploadDir = "./uploads"

	reportRateLimit  = 30
	reportRateWindow = time.Minute
)

type Container struct {
	Repository      *repository.Repository
	Logger          *zap.Logger
	UploadDir       string
	LoginHandler    *security.LoginHandler
	AssetHandler    *assets.AssetHandler
	SettingsHandler *settings.SettingsHandler
	ReportHandler   *reports.ReportHandler
	ReportLimiter   *rate_limiter.RateLimiter
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) (*Container, error) {
	repo := repository.NewRepository(db)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = defaultUploadDir
	}
	imageStore, err := imagestore.NewDiskStore(uploadDir, logger)
	if err != nil {
		return nil, err
	}

	assetsRepo := assets.NewRepository(repo)
	historyRepo := assets.NewHistoryRepository(repo)
	assetService := assets.NewAssetService(assetsRepo, historyRepo, imageStore, logger, os.Getenv("CLIENT_URL"))
	assetHandler := &assets.AssetHandler{
		Service: assetService,
		History: historyRepo,
		Catalog: assetsRepo,
	}

	settingsHandler := &settings.SettingsHandler{
		Categories: settings.NewCategoryRepository(repo),
		Locations:  settings.NewLocationRepository(repo),
	}

	reportHandler := &reports.ReportHandler{Assets: assetsRepo}

	return &Container{
		Repository:      repo,
		Logger:          logger,
		UploadDir:       uploadDir,
		LoginHandler:    security.NewLoginHandler(),
		AssetHandler:    assetHandler,
		SettingsHandler: settingsHandler,
		ReportHandler:   reportHandler,
		ReportLimiter:   rate_limiter.NewRateLimiter(reportRateLimit, reportRateWindow),
	}, nil
}
