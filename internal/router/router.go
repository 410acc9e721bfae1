package router

import (
	"fmt"
	"strings"

	"github.com/vendor-next/internal/cache"
	"github.com/vendor-next/internal/config"
	apihandlers "github.com/vendor-next/internal/http/handlers/api"
	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vn"
	}
	redisClient := cache.Client()
	// 采购单写入限流：指标重算随写入触发，写入频率决定数据库压力
	poWriteRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:po_write", redisPrefix),
		WindowSeconds: cfg.Security.WriteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WriteRateLimit.MaxRequests,
	}
	poWriteLimiter := RateLimitMiddleware(redisClient, poWriteRule, KeyByIP)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 供应商管理
		apiV1.POST("/vendors", handler.CreateVendor)
		apiV1.GET("/vendors", handler.GetVendors)
		apiV1.GET("/vendors/:id", handler.GetVendor)
		apiV1.PUT("/vendors/:id", handler.UpdateVendor)
		apiV1.DELETE("/vendors/:id", handler.DeleteVendor)

		// 供应商绩效
		apiV1.GET("/vendors/:id/performance", handler.GetVendorPerformance)
		apiV1.POST("/vendors/:id/performance/snapshots", handler.CreatePerformanceSnapshot)
		apiV1.GET("/performance-history", handler.GetPerformanceHistory)

		// 采购单管理
		apiV1.POST("/purchase-orders", poWriteLimiter, handler.CreatePurchaseOrder)
		apiV1.GET("/purchase-orders", handler.GetPurchaseOrders)
		apiV1.GET("/purchase-orders/:id", handler.GetPurchaseOrder)
		apiV1.PUT("/purchase-orders/:id", poWriteLimiter, handler.UpdatePurchaseOrder)
		apiV1.DELETE("/purchase-orders/:id", handler.DeletePurchaseOrder)
		apiV1.POST("/purchase-orders/:id/acknowledge", poWriteLimiter, handler.AcknowledgePurchaseOrder)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
