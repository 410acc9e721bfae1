package service

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/vendor-next/internal/constants"
	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func completedOrder(issue time.Time, ackAfter time.Duration, deliverAfter time.Duration) models.PurchaseOrder {
	ack := issue.Add(ackAfter)
	return models.PurchaseOrder{
		Status:             constants.POStatusCompleted,
		IssueDate:          issue,
		DeliveryDate:       issue.Add(deliverAfter),
		AcknowledgmentDate: &ack,
	}
}

func TestComputeMetricsOnTimeDeliveryRate(t *testing.T) {
	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	// 一单在确认期限内交付，一单超期
	orders := []models.PurchaseOrder{
		completedOrder(issue, 48*time.Hour, 24*time.Hour),
		completedOrder(issue, 24*time.Hour, 72*time.Hour),
	}

	metrics := computeMetrics(models.PerformanceMetrics{}, orders)
	if !floatEquals(metrics.OnTimeDeliveryRate, 50) {
		t.Fatalf("expected on-time delivery rate 50, got %v", metrics.OnTimeDeliveryRate)
	}
}

func TestComputeMetricsOnTimeExcludesUnacknowledged(t *testing.T) {
	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	unacked := models.PurchaseOrder{
		Status:       constants.POStatusCompleted,
		IssueDate:    issue,
		DeliveryDate: issue.Add(24 * time.Hour),
	}
	orders := []models.PurchaseOrder{
		completedOrder(issue, 48*time.Hour, 24*time.Hour),
		unacked,
	}

	metrics := computeMetrics(models.PerformanceMetrics{}, orders)
	// 未确认的完成单计入分母但不计入准时
	if !floatEquals(metrics.OnTimeDeliveryRate, 50) {
		t.Fatalf("expected on-time delivery rate 50, got %v", metrics.OnTimeDeliveryRate)
	}
}

func TestComputeMetricsQualityRatingAvg(t *testing.T) {
	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	high := 5.0
	low := 3.0
	pendingRating := 1.0

	rated1 := completedOrder(issue, time.Hour, 48*time.Hour)
	rated1.QualityRating = &high
	rated2 := completedOrder(issue, time.Hour, 48*time.Hour)
	rated2.QualityRating = &low
	unrated := completedOrder(issue, time.Hour, 48*time.Hour)
	// 非完成单的评分不计入均值
	pending := models.PurchaseOrder{
		Status:        constants.POStatusPending,
		IssueDate:     issue,
		DeliveryDate:  issue.Add(48 * time.Hour),
		QualityRating: &pendingRating,
	}

	metrics := computeMetrics(models.PerformanceMetrics{}, []models.PurchaseOrder{rated1, rated2, unrated, pending})
	if !floatEquals(metrics.QualityRatingAvg, 4) {
		t.Fatalf("expected quality rating avg 4, got %v", metrics.QualityRatingAvg)
	}
}

func TestComputeMetricsAverageResponseTimeAllStatuses(t *testing.T) {
	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	ackPending := issue.Add(6 * time.Hour)
	ackCanceled := issue.Add(18 * time.Hour)

	pending := models.PurchaseOrder{
		Status:             constants.POStatusPending,
		IssueDate:          issue,
		DeliveryDate:       issue.Add(48 * time.Hour),
		AcknowledgmentDate: &ackPending,
	}
	canceled := models.PurchaseOrder{
		Status:             constants.POStatusCanceled,
		IssueDate:          issue,
		DeliveryDate:       issue.Add(48 * time.Hour),
		AcknowledgmentDate: &ackCanceled,
	}
	// 未确认的采购单不计入响应时间
	unacked := models.PurchaseOrder{
		Status:       constants.POStatusPending,
		IssueDate:    issue,
		DeliveryDate: issue.Add(48 * time.Hour),
	}

	metrics := computeMetrics(models.PerformanceMetrics{}, []models.PurchaseOrder{pending, canceled, unacked})
	if !floatEquals(metrics.AverageResponseTime, 12) {
		t.Fatalf("expected average response time 12 hours, got %v", metrics.AverageResponseTime)
	}
}

func TestComputeMetricsFulfillmentRate(t *testing.T) {
	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	issues := "shipment damaged"
	blank := "   \n\t"

	clean := completedOrder(issue, time.Hour, 48*time.Hour)
	flagged := completedOrder(issue, time.Hour, 48*time.Hour)
	flagged.Issues = &issues
	// 空白问题文本视为无问题
	whitespace := completedOrder(issue, time.Hour, 48*time.Hour)
	whitespace.Issues = &blank

	metrics := computeMetrics(models.PerformanceMetrics{}, []models.PurchaseOrder{clean, flagged, whitespace})
	if !floatEquals(metrics.FulfillmentRate, 2.0/3.0*100) {
		t.Fatalf("expected fulfillment rate 66.67, got %v", metrics.FulfillmentRate)
	}
}

func TestComputeMetricsFulfillmentCountsPendingInDenominator(t *testing.T) {
	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	pending := models.PurchaseOrder{
		Status:       constants.POStatusPending,
		IssueDate:    issue,
		DeliveryDate: issue.Add(48 * time.Hour),
	}
	clean := completedOrder(issue, time.Hour, 48*time.Hour)

	metrics := computeMetrics(models.PerformanceMetrics{}, []models.PurchaseOrder{pending, clean})
	if !floatEquals(metrics.FulfillmentRate, 50) {
		t.Fatalf("expected fulfillment rate 50, got %v", metrics.FulfillmentRate)
	}
}

func TestComputeMetricsPreservesPriorWhenNoOrders(t *testing.T) {
	prior := models.PerformanceMetrics{
		OnTimeDeliveryRate:  87.5,
		QualityRatingAvg:    4.2,
		AverageResponseTime: 16,
		FulfillmentRate:     90,
	}

	metrics := computeMetrics(prior, nil)
	if metrics != prior {
		t.Fatalf("expected prior metrics to be preserved, got %+v", metrics)
	}
}

func TestComputeMetricsPreservesPriorWithoutCompletedOrders(t *testing.T) {
	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	prior := models.PerformanceMetrics{
		OnTimeDeliveryRate:  87.5,
		QualityRatingAvg:    4.2,
		AverageResponseTime: 16,
		FulfillmentRate:     90,
	}
	pending := models.PurchaseOrder{
		Status:       constants.POStatusPending,
		IssueDate:    issue,
		DeliveryDate: issue.Add(48 * time.Hour),
	}

	metrics := computeMetrics(prior, []models.PurchaseOrder{pending})
	// 无完成单：准时交付率与质量评分保留原值
	if !floatEquals(metrics.OnTimeDeliveryRate, prior.OnTimeDeliveryRate) {
		t.Fatalf("expected on-time delivery rate preserved, got %v", metrics.OnTimeDeliveryRate)
	}
	if !floatEquals(metrics.QualityRatingAvg, prior.QualityRatingAvg) {
		t.Fatalf("expected quality rating avg preserved, got %v", metrics.QualityRatingAvg)
	}
	// 无已确认单：响应时间保留原值
	if !floatEquals(metrics.AverageResponseTime, prior.AverageResponseTime) {
		t.Fatalf("expected average response time preserved, got %v", metrics.AverageResponseTime)
	}
	// 有采购单即重算履约率：无完成单时为 0
	if !floatEquals(metrics.FulfillmentRate, 0) {
		t.Fatalf("expected fulfillment rate 0, got %v", metrics.FulfillmentRate)
	}
}

func TestHasRecordedIssues(t *testing.T) {
	blank := "  \t "
	text := "late shipment"
	if hasRecordedIssues(nil) {
		t.Fatalf("expected nil issues to count as none")
	}
	if hasRecordedIssues(&blank) {
		t.Fatalf("expected whitespace issues to count as none")
	}
	if !hasRecordedIssues(&text) {
		t.Fatalf("expected non-blank issues to be recorded")
	}
}

func setupMetricsServiceTest(t *testing.T) (*MetricsService, repository.VendorRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:metrics_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.PurchaseOrder{}, &models.HistoricalPerformance{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	vendorRepo := repository.NewVendorRepository(db)
	orderRepo := repository.NewPurchaseOrderRepository(db)
	return NewMetricsService(vendorRepo, orderRepo), vendorRepo, db
}

func TestRecomputePersistsMetrics(t *testing.T) {
	metricsService, vendorRepo, db := setupMetricsServiceTest(t)

	vendor := &models.Vendor{Name: "华东电子元件有限公司", VendorCode: "VND-T-001"}
	if err := vendorRepo.Create(vendor); err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}

	issue := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rating := 4.0
	order := completedOrder(issue, 6*time.Hour, 48*time.Hour)
	order.PONumber = "PO-T-001"
	order.VendorID = vendor.ID
	order.QualityRating = &rating
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := metricsService.Recompute(vendor.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	stored, err := vendorRepo.GetByID(vendor.ID)
	if err != nil || stored == nil {
		t.Fatalf("load vendor failed: %v", err)
	}
	if !floatEquals(stored.OnTimeDeliveryRate, 100) {
		t.Fatalf("expected on-time delivery rate 100, got %v", stored.OnTimeDeliveryRate)
	}
	if !floatEquals(stored.QualityRatingAvg, 4) {
		t.Fatalf("expected quality rating avg 4, got %v", stored.QualityRatingAvg)
	}
	if !floatEquals(stored.AverageResponseTime, 6) {
		t.Fatalf("expected average response time 6, got %v", stored.AverageResponseTime)
	}
	if !floatEquals(stored.FulfillmentRate, 100) {
		t.Fatalf("expected fulfillment rate 100, got %v", stored.FulfillmentRate)
	}
}

func TestRecomputeVendorNotFound(t *testing.T) {
	metricsService, _, _ := setupMetricsServiceTest(t)
	if err := metricsService.Recompute(9999); err != ErrVendorNotFound {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
}
