package cli

import (
	"gorm.io/gorm"

	auditlog "github.com/reliefops/logistics-go/internal/adapters/audit"
	"github.com/reliefops/logistics-go/internal/adapters/persistence"
	"github.com/reliefops/logistics-go/internal/application/common"
	"github.com/reliefops/logistics-go/internal/application/coordinator"
	"github.com/reliefops/logistics-go/internal/application/dashboard"
	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
	"github.com/reliefops/logistics-go/internal/domain/supply"
	"github.com/reliefops/logistics-go/internal/infrastructure/config"
	"github.com/reliefops/logistics-go/internal/infrastructure/database"
)

// App wires configuration, storage, the domain services and the mediator
// into one place the commands can share.
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	Mediator     common.Mediator
	AuditLog     *auditlog.MemoryLog
	NeedRepo     need.Repository
	SupplyRepo   supply.Repository
	ShipmentRepo shipment.Repository
}

// NewApp builds the full application graph from configuration
func NewApp(configPath string) (*App, error) {
	cfg := config.LoadConfigOrDefault(configPath)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	needRepo := persistence.NewGormNeedRepository(db, nil)
	supplyRepo := persistence.NewGormSupplyRepository(db, nil)
	shipmentRepo := persistence.NewGormShipmentRepository(db, nil)

	auditOpts := []auditlog.Option{auditlog.WithMaxLogs(cfg.Audit.MaxInMemoryLogs)}
	if cfg.Audit.FilePath != "" {
		auditOpts = append(auditOpts, auditlog.WithFilePath(cfg.Audit.FilePath))
	}
	auditLog := auditlog.NewMemoryLog(auditOpts...)

	priorities := matching.NewPriorityManager(cfg.Priority.ToDomain(), nil)
	engine := matching.NewEngine(cfg.Matching.ToDomain(), priorities, auditLog, nil)
	dashboardService := dashboard.NewService(cfg.Dashboard.ToDomain(), priorities, auditLog, nil, nil)

	m := common.NewMediator()
	if err := common.RegisterHandler[*coordinator.RunMatchingCycleCommand](m,
		coordinator.NewRunMatchingCycleHandler(needRepo, supplyRepo, engine)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*coordinator.RunMatchingLoopCommand](m,
		coordinator.NewRunMatchingLoopHandler(m)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*coordinator.GetDashboardQuery](m,
		coordinator.NewGetDashboardHandler(needRepo, supplyRepo, shipmentRepo, dashboardService)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*coordinator.CreateShipmentCommand](m,
		coordinator.NewCreateShipmentHandler(shipmentRepo, auditLog, nil)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*coordinator.AdvanceShipmentCommand](m,
		coordinator.NewAdvanceShipmentHandler(shipmentRepo, auditLog, nil)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*coordinator.RegisterNeedCommand](m,
		coordinator.NewRegisterNeedHandler(needRepo, auditLog, nil)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*coordinator.RegisterSupplyCommand](m,
		coordinator.NewRegisterSupplyHandler(supplyRepo, auditLog, nil)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*coordinator.ResupplyCommand](m,
		coordinator.NewResupplyHandler(supplyRepo, auditLog, nil)); err != nil {
		return nil, err
	}

	return &App{
		Config:       cfg,
		DB:           db,
		Mediator:     m,
		AuditLog:     auditLog,
		NeedRepo:     needRepo,
		SupplyRepo:   supplyRepo,
		ShipmentRepo: shipmentRepo,
	}, nil
}

// Close releases the database connection
func (a *App) Close() error {
	return database.Close(a.DB)
}
