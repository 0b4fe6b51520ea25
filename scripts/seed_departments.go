package main

import (
	"context"
	"errors"
	"flag"

	"go.uber.org/zap"

	"github.com/tumai/space-api/adapters/persistence"
	departmentUC "github.com/tumai/space-api/internal/application/usecase/department"
	"github.com/tumai/space-api/internal/config"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

var defaultDepartments = []departmentUC.CreateDepartmentInput{
	{Handle: "DEV", Name: "Software Development"},
	{Handle: "MARKETING", Name: "Marketing"},
	{Handle: "INDUSTRY", Name: "Industry"},
	{Handle: "MAKEATHON", Name: "Makeathon"},
	{Handle: "VENTURE", Name: "Venture"},
	{Handle: "PNS", Name: "Partners & Sponsors"},
	{Handle: "COMMUNITY", Name: "Community"},
	{Handle: "LEGALFINANCE", Name: "Legal & Finance"},
}

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.NewZapLogger("development").Fatal("cannot load config", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env, zap.String("service", cfg.App.Name))
	defer appLogger.Sync()

	if err := persistence.RunMigrations(cfg.DB.DSN, appLogger); err != nil {
		appLogger.Fatal("cannot migrate database", err)
	}
	pool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect DB", err)
	}
	defer pool.Close()

	uc := departmentUC.NewDepartmentUseCase(persistence.NewPostgresDepartmentRepo(pool, appLogger), appLogger)

	ctx := context.Background()
	for _, in := range defaultDepartments {
		if _, err := uc.ExecuteCreate(ctx, in); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				appLogger.Info("Department already present", zap.String("handle", in.Handle))
				continue
			}
			appLogger.Fatal("cannot add department", err, zap.String("handle", in.Handle))
		}
	}
	appLogger.Info("Departments seeded", zap.Int("count", len(defaultDepartments)))
}
