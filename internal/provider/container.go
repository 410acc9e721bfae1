package provider

import (
	"github.com/vendor-next/internal/cache"
	"github.com/vendor-next/internal/config"
	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/queue"
	"github.com/vendor-next/internal/repository"
	"github.com/vendor-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	VendorRepo                repository.VendorRepository
	PurchaseOrderRepo         repository.PurchaseOrderRepository
	HistoricalPerformanceRepo repository.HistoricalPerformanceRepository

	// Services
	MetricsService       *service.MetricsService
	VendorService        *service.VendorService
	PurchaseOrderService *service.PurchaseOrderService
	PerformanceService   *service.PerformanceService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.VendorRepo = repository.NewVendorRepository(db)
	c.PurchaseOrderRepo = repository.NewPurchaseOrderRepository(db)
	c.HistoricalPerformanceRepo = repository.NewHistoricalPerformanceRepository(db)
}

func (c *Container) initServices() {
	c.MetricsService = service.NewMetricsService(c.VendorRepo, c.PurchaseOrderRepo)
	c.VendorService = service.NewVendorService(c.VendorRepo)
	c.PurchaseOrderService = service.NewPurchaseOrderService(c.PurchaseOrderRepo, c.VendorRepo, c.MetricsService)
	c.PerformanceService = service.NewPerformanceService(c.VendorRepo, c.HistoricalPerformanceRepo, c.Config.Metrics.CacheTTLSeconds)
}
