package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/vendor-next/internal/config"
	"github.com/vendor-next/internal/constants"
	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"
	"github.com/vendor-next/internal/service"

	"github.com/google/uuid"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加供应商
	vendors := []models.Vendor{
		{
			Name:           "华东电子元件有限公司",
			ContactDetails: "sales@huadong-elec.example.com / +86-21-5550-1234",
			Address:        "上海市浦东新区张江高科技园区 88 号",
			VendorCode:     "VND-HD-001",
		},
		{
			Name:           "Northwind Industrial Supplies",
			ContactDetails: "orders@northwind.example.com / +1-206-555-0100",
			Address:        "1200 Harbor Ave SW, Seattle, WA",
			VendorCode:     "VND-NW-002",
		},
		{
			Name:           "广州包装材料厂",
			ContactDetails: "gz-pack@example.com / +86-20-5550-8866",
			Address:        "广州市黄埔区开发大道 156 号",
			VendorCode:     "VND-GZ-003",
		},
	}

	vendorIDs := map[string]uint{}
	for _, vendor := range vendors {
		var existing models.Vendor
		if err := models.DB.Where("vendor_code = ?", vendor.VendorCode).First(&existing).Error; err != nil {
			if err := models.DB.Create(&vendor).Error; err != nil {
				stdLog.Printf("Failed to create vendor %s: %v", vendor.VendorCode, err)
				continue
			}
			stdLog.Printf("Created vendor: %s", vendor.VendorCode)
			vendorIDs[vendor.VendorCode] = vendor.ID
		} else {
			stdLog.Printf("Vendor already exists: %s", vendor.VendorCode)
			vendorIDs[vendor.VendorCode] = existing.ID
		}
	}

	// 为每个供应商添加示例采购单
	now := time.Now()
	rating := func(v float64) *float64 { return &v }
	note := func(s string) *string { return &s }

	type seedOrder struct {
		vendorCode    string
		status        string
		orderedDaysAgo int
		deliverInDays int
		ackAfterHours *float64
		qualityRating *float64
		issues        *string
		quantity      int
		items         models.JSON
	}

	seedOrders := []seedOrder{
		{
			vendorCode:    "VND-HD-001",
			status:        constants.POStatusCompleted,
			orderedDaysAgo: 30,
			deliverInDays: 7,
			ackAfterHours: rating(4),
			qualityRating: rating(4.5),
			quantity:      500,
			items:         models.JSON{"sku": "CAP-100UF", "description": "电解电容 100uF"},
		},
		{
			vendorCode:    "VND-HD-001",
			status:        constants.POStatusCompleted,
			orderedDaysAgo: 14,
			deliverInDays: 5,
			ackAfterHours: rating(12),
			qualityRating: rating(3.8),
			issues:        note("两箱外包装破损"),
			quantity:      200,
			items:         models.JSON{"sku": "RES-10K", "description": "贴片电阻 10K"},
		},
		{
			vendorCode:    "VND-NW-002",
			status:        constants.POStatusPending,
			orderedDaysAgo: 3,
			deliverInDays: 10,
			ackAfterHours: rating(6),
			quantity:      50,
			items:         models.JSON{"sku": "PAL-STD", "description": "Standard pallets"},
		},
		{
			vendorCode:    "VND-NW-002",
			status:        constants.POStatusCanceled,
			orderedDaysAgo: 20,
			deliverInDays: 15,
			quantity:      10,
			items:         models.JSON{"sku": "FORK-EXT", "description": "Forklift extensions"},
		},
		{
			vendorCode:    "VND-GZ-003",
			status:        constants.POStatusCompleted,
			orderedDaysAgo: 45,
			deliverInDays: 20,
			ackAfterHours: rating(48),
			qualityRating: rating(4.9),
			quantity:      10000,
			items:         models.JSON{"sku": "BOX-M", "description": "中号瓦楞纸箱"},
		},
	}

	for _, seed := range seedOrders {
		vendorID, ok := vendorIDs[seed.vendorCode]
		if !ok || vendorID == 0 {
			continue
		}
		orderDate := now.AddDate(0, 0, -seed.orderedDaysAgo)
		order := models.PurchaseOrder{
			PONumber:      fmt.Sprintf("PO-%s", strings.ToUpper(uuid.NewString()[:8])),
			VendorID:      vendorID,
			OrderDate:     orderDate,
			IssueDate:     orderDate,
			DeliveryDate:  orderDate.AddDate(0, 0, seed.deliverInDays),
			Items:         seed.items,
			Quantity:      seed.quantity,
			Status:        seed.status,
			QualityRating: seed.qualityRating,
			Issues:        seed.issues,
		}
		if seed.ackAfterHours != nil {
			ack := orderDate.Add(time.Duration(*seed.ackAfterHours * float64(time.Hour)))
			order.AcknowledgmentDate = &ack
		}
		if err := models.DB.Create(&order).Error; err != nil {
			stdLog.Printf("Failed to create purchase order for %s: %v", seed.vendorCode, err)
			continue
		}
		stdLog.Printf("Created purchase order: %s (%s)", order.PONumber, seed.vendorCode)
	}

	// 采购单为直接写库，统一重算一次各供应商指标
	vendorRepo := repository.NewVendorRepository(models.DB)
	orderRepo := repository.NewPurchaseOrderRepository(models.DB)
	metrics := service.NewMetricsService(vendorRepo, orderRepo)
	for code, vendorID := range vendorIDs {
		if err := metrics.Recompute(vendorID); err != nil {
			stdLog.Printf("Failed to recompute metrics for %s: %v", code, err)
		}
	}

	stdLog.Printf("Seed finished")
}
