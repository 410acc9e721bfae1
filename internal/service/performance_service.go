package service

import (
	"context"
	"time"

	"github.com/vendor-next/internal/cache"
	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"
)

const defaultPerformanceCacheTTL = 30 * time.Second

// PerformanceService 当前绩效读取与历史快照工厂
type PerformanceService struct {
	vendorRepo   repository.VendorRepository
	snapshotRepo repository.HistoricalPerformanceRepository
	cacheTTL     time.Duration
}

// NewPerformanceService 创建绩效服务
func NewPerformanceService(vendorRepo repository.VendorRepository, snapshotRepo repository.HistoricalPerformanceRepository, cacheTTLSeconds int) *PerformanceService {
	ttl := defaultPerformanceCacheTTL
	if cacheTTLSeconds > 0 {
		ttl = time.Duration(cacheTTLSeconds) * time.Second
	}
	return &PerformanceService{
		vendorRepo:   vendorRepo,
		snapshotRepo: snapshotRepo,
		cacheTTL:     ttl,
	}
}

// GetPerformance 读取供应商当前四项指标。命中缓存时不访问数据库。
func (s *PerformanceService) GetPerformance(ctx context.Context, vendorID uint) (*models.PerformanceMetrics, error) {
	key := performanceCacheKey(vendorID)

	var cached models.PerformanceMetrics
	if hit, err := cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warnw("vendor_performance_cache_read_failed", "vendor_id", vendorID, "error", err)
	} else if hit {
		return &cached, nil
	}

	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	metrics := vendor.Metrics()
	if err := cache.SetJSON(ctx, key, metrics, s.cacheTTL); err != nil {
		logger.Warnw("vendor_performance_cache_write_failed", "vendor_id", vendorID, "error", err)
	}
	return &metrics, nil
}

// CreateSnapshot 读取供应商当前指标并固化为一条不可变历史记录。
// 纯创建操作，不触发任何重算。
func (s *PerformanceService) CreateSnapshot(vendorID uint) (*models.HistoricalPerformance, error) {
	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	record := &models.HistoricalPerformance{
		VendorID:            vendor.ID,
		Date:                time.Now(),
		OnTimeDeliveryRate:  vendor.OnTimeDeliveryRate,
		QualityRatingAvg:    vendor.QualityRatingAvg,
		AverageResponseTime: vendor.AverageResponseTime,
		FulfillmentRate:     vendor.FulfillmentRate,
	}
	if err := s.snapshotRepo.Create(record); err != nil {
		return nil, err
	}

	logger.Infow("vendor_performance_snapshot_created",
		"vendor_id", vendor.ID,
		"snapshot_id", record.ID,
	)
	return record, nil
}

// ListSnapshots 查询历史绩效快照
func (s *PerformanceService) ListSnapshots(filter repository.HistoricalPerformanceListFilter) ([]models.HistoricalPerformance, int64, error) {
	return s.snapshotRepo.List(filter)
}
