package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPerformanceServiceTest(t *testing.T) (*PerformanceService, repository.VendorRepository, *models.Vendor) {
	t.Helper()
	dsn := fmt.Sprintf("file:performance_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.PurchaseOrder{}, &models.HistoricalPerformance{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	vendorRepo := repository.NewVendorRepository(db)
	snapshotRepo := repository.NewHistoricalPerformanceRepository(db)
	svc := NewPerformanceService(vendorRepo, snapshotRepo, 0)

	vendor := &models.Vendor{Name: "Northwind Industrial Supplies", VendorCode: "VND-T-300"}
	if err := vendorRepo.Create(vendor); err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}
	return svc, vendorRepo, vendor
}

func TestGetPerformanceReturnsCurrentMetrics(t *testing.T) {
	svc, vendorRepo, vendor := setupPerformanceServiceTest(t)

	expected := models.PerformanceMetrics{
		OnTimeDeliveryRate:  75,
		QualityRatingAvg:    4.1,
		AverageResponseTime: 9,
		FulfillmentRate:     80,
	}
	if err := vendorRepo.UpdateMetrics(vendor.ID, expected); err != nil {
		t.Fatalf("update metrics failed: %v", err)
	}

	metrics, err := svc.GetPerformance(context.Background(), vendor.ID)
	if err != nil {
		t.Fatalf("get performance failed: %v", err)
	}
	if *metrics != expected {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

func TestGetPerformanceVendorNotFound(t *testing.T) {
	svc, _, _ := setupPerformanceServiceTest(t)

	if _, err := svc.GetPerformance(context.Background(), 9999); err != ErrVendorNotFound {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
}

func TestCreateSnapshotCapturesCallTimeValues(t *testing.T) {
	svc, vendorRepo, vendor := setupPerformanceServiceTest(t)

	initial := models.PerformanceMetrics{
		OnTimeDeliveryRate:  60,
		QualityRatingAvg:    3.9,
		AverageResponseTime: 12,
		FulfillmentRate:     70,
	}
	if err := vendorRepo.UpdateMetrics(vendor.ID, initial); err != nil {
		t.Fatalf("update metrics failed: %v", err)
	}

	snapshot, err := svc.CreateSnapshot(vendor.ID)
	if err != nil {
		t.Fatalf("create snapshot failed: %v", err)
	}
	if snapshot.VendorID != vendor.ID {
		t.Fatalf("unexpected snapshot vendor: %d", snapshot.VendorID)
	}
	if snapshot.OnTimeDeliveryRate != initial.OnTimeDeliveryRate ||
		snapshot.QualityRatingAvg != initial.QualityRatingAvg ||
		snapshot.AverageResponseTime != initial.AverageResponseTime ||
		snapshot.FulfillmentRate != initial.FulfillmentRate {
		t.Fatalf("snapshot does not match vendor metrics: %+v", snapshot)
	}

	// 快照固化调用时刻的值，供应商指标后续变化不影响既有快照
	changed := models.PerformanceMetrics{OnTimeDeliveryRate: 10, QualityRatingAvg: 1, AverageResponseTime: 99, FulfillmentRate: 5}
	if err := vendorRepo.UpdateMetrics(vendor.ID, changed); err != nil {
		t.Fatalf("update metrics failed: %v", err)
	}

	records, total, err := svc.ListSnapshots(repository.HistoricalPerformanceListFilter{VendorID: vendor.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list snapshots failed: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("expected one snapshot, got total=%d len=%d", total, len(records))
	}
	if records[0].OnTimeDeliveryRate != initial.OnTimeDeliveryRate {
		t.Fatalf("expected snapshot to keep original value, got %v", records[0].OnTimeDeliveryRate)
	}
}

func TestCreateSnapshotVendorNotFound(t *testing.T) {
	svc, _, _ := setupPerformanceServiceTest(t)

	if _, err := svc.CreateSnapshot(9999); err != ErrVendorNotFound {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	svc, _, vendor := setupPerformanceServiceTest(t)

	first, err := svc.CreateSnapshot(vendor.ID)
	if err != nil {
		t.Fatalf("create first snapshot failed: %v", err)
	}
	second, err := svc.CreateSnapshot(vendor.ID)
	if err != nil {
		t.Fatalf("create second snapshot failed: %v", err)
	}

	records, _, err := svc.ListSnapshots(repository.HistoricalPerformanceListFilter{VendorID: vendor.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list snapshots failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two snapshots, got %d", len(records))
	}
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Fatalf("expected newest snapshot first, got %d then %d", records[0].ID, records[1].ID)
	}
}
