package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendor-next/internal/cache"
	"github.com/vendor-next/internal/constants"
	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"

	"gorm.io/gorm"
)

// MetricsService 绩效指标引擎：根据供应商的采购单集合重算四项指标并写回。
type MetricsService struct {
	vendorRepo repository.VendorRepository
	orderRepo  repository.PurchaseOrderRepository
}

// NewMetricsService 创建指标引擎
func NewMetricsService(vendorRepo repository.VendorRepository, orderRepo repository.PurchaseOrderRepository) *MetricsService {
	return &MetricsService{
		vendorRepo: vendorRepo,
		orderRepo:  orderRepo,
	}
}

// Recompute 在独立事务内重算指定供应商的绩效指标。
// 读取采购单、聚合、写回供应商发生在同一事务中，避免并发写入下的丢失更新。
func (s *MetricsService) Recompute(vendorID uint) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		return s.RecomputeTx(tx, vendorID)
	})
	if err != nil {
		return err
	}
	s.InvalidatePerformanceCache(vendorID)
	return nil
}

// RecomputeTx 在外部事务内重算指标，供采购单保存路径复用同一事务。
// 调用方负责在事务提交后失效缓存。
func (s *MetricsService) RecomputeTx(tx *gorm.DB, vendorID uint) error {
	vendorRepo := s.vendorRepo.WithTx(tx)
	vendor, err := vendorRepo.GetByID(vendorID)
	if err != nil {
		return err
	}
	if vendor == nil {
		return ErrVendorNotFound
	}

	orders, err := s.orderRepo.WithTx(tx).ListByVendor(vendorID)
	if err != nil {
		return err
	}

	metrics := computeMetrics(vendor.Metrics(), orders)

	// 四项指标一次写回；即使没有任何采购单也执行写入（保留原值）
	if err := vendorRepo.UpdateMetrics(vendorID, metrics); err != nil {
		return err
	}

	logger.Debugw("vendor_metrics_recomputed",
		"vendor_id", vendorID,
		"order_count", len(orders),
		"on_time_delivery_rate", metrics.OnTimeDeliveryRate,
		"quality_rating_avg", metrics.QualityRatingAvg,
		"average_response_time", metrics.AverageResponseTime,
		"fulfillment_rate", metrics.FulfillmentRate,
	)
	return nil
}

// InvalidatePerformanceCache 失效供应商当前绩效缓存
func (s *MetricsService) InvalidatePerformanceCache(vendorID uint) {
	if err := cache.Del(context.Background(), performanceCacheKey(vendorID)); err != nil {
		logger.Warnw("vendor_performance_cache_invalidate_failed", "vendor_id", vendorID, "error", err)
	}
}

func performanceCacheKey(vendorID uint) string {
	return fmt.Sprintf("%s:%d", constants.CacheKeyVendorPerformance, vendorID)
}

// computeMetrics 对采购单集合做四次互不依赖的聚合。
// 任一指标的前置条件不满足时保留 prior 中的原值，避免把未知归零。
func computeMetrics(prior models.PerformanceMetrics, orders []models.PurchaseOrder) models.PerformanceMetrics {
	next := prior

	totalOrders := len(orders)
	var completedCount int
	var onTimeCount int
	var ratingSum float64
	var ratingCount int
	var responseHoursSum float64
	var responseCount int
	var fulfilledCount int

	for i := range orders {
		order := &orders[i]

		// 响应时间统计覆盖所有状态的已确认采购单
		if order.AcknowledgmentDate != nil {
			responseHoursSum += order.AcknowledgmentDate.Sub(order.IssueDate).Hours()
			responseCount++
		}

		if order.Status != constants.POStatusCompleted {
			continue
		}
		completedCount++

		// 未确认的采购单不计入准时交付
		if order.AcknowledgmentDate != nil && !order.DeliveryDate.After(*order.AcknowledgmentDate) {
			onTimeCount++
		}
		if order.QualityRating != nil {
			ratingSum += *order.QualityRating
			ratingCount++
		}
		if !hasRecordedIssues(order.Issues) {
			fulfilledCount++
		}
	}

	if completedCount > 0 {
		next.OnTimeDeliveryRate = float64(onTimeCount) / float64(completedCount) * 100
	}
	if ratingCount > 0 {
		next.QualityRatingAvg = ratingSum / float64(ratingCount)
	}
	if responseCount > 0 {
		next.AverageResponseTime = responseHoursSum / float64(responseCount)
	}
	if totalOrders > 0 {
		next.FulfillmentRate = float64(fulfilledCount) / float64(totalOrders) * 100
	}

	return next
}

// hasRecordedIssues 判断采购单是否记录了问题（空白文本视为无问题）
func hasRecordedIssues(issues *string) bool {
	return issues != nil && strings.TrimSpace(*issues) != ""
}
