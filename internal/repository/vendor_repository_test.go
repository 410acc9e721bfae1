package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/vendor-next/internal/constants"
	"github.com/vendor-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVendorRepositoryTest(t *testing.T) (*GormVendorRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:vendor_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.PurchaseOrder{}, &models.HistoricalPerformance{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewVendorRepository(db), db
}

func TestUpdateMetricsWritesAllFourColumns(t *testing.T) {
	repo, _ := setupVendorRepositoryTest(t)

	vendor := models.Vendor{Name: "华东电子元件有限公司", VendorCode: "VND-R-100"}
	if err := repo.Create(&vendor); err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}

	metrics := models.PerformanceMetrics{
		OnTimeDeliveryRate:  88,
		QualityRatingAvg:    4.4,
		AverageResponseTime: 7.5,
		FulfillmentRate:     92,
	}
	if err := repo.UpdateMetrics(vendor.ID, metrics); err != nil {
		t.Fatalf("update metrics failed: %v", err)
	}

	stored, err := repo.GetByID(vendor.ID)
	if err != nil || stored == nil {
		t.Fatalf("load vendor failed: %v", err)
	}
	if stored.Metrics() != metrics {
		t.Fatalf("unexpected metrics: %+v", stored.Metrics())
	}
}

func TestGetByCodeMissing(t *testing.T) {
	repo, _ := setupVendorRepositoryTest(t)

	vendor, err := repo.GetByCode("VND-R-NONE")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if vendor != nil {
		t.Fatalf("expected nil for missing code, got %+v", vendor)
	}
}

func TestListSearchesNameAndCode(t *testing.T) {
	repo, _ := setupVendorRepositoryTest(t)

	vendors := []models.Vendor{
		{Name: "广州包装材料厂", VendorCode: "VND-R-110"},
		{Name: "Northwind Industrial Supplies", VendorCode: "VND-R-111"},
	}
	for i := range vendors {
		if err := repo.Create(&vendors[i]); err != nil {
			t.Fatalf("create vendor failed: %v", err)
		}
	}

	found, total, err := repo.List(VendorListFilter{Search: "Northwind", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(found) != 1 || found[0].VendorCode != "VND-R-111" {
		t.Fatalf("unexpected search result: total=%d vendors=%+v", total, found)
	}

	byCode, total, err := repo.List(VendorListFilter{Search: "VND-R-110", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(byCode) != 1 || byCode[0].Name != "广州包装材料厂" {
		t.Fatalf("unexpected code search result: total=%d vendors=%+v", total, byCode)
	}
}

func TestDeleteVendorRemovesAssociations(t *testing.T) {
	repo, db := setupVendorRepositoryTest(t)

	vendor := models.Vendor{Name: "待删除供应商", VendorCode: "VND-R-120"}
	if err := repo.Create(&vendor); err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}

	issue := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	order := models.PurchaseOrder{
		PONumber:     "PO-R-120",
		VendorID:     vendor.ID,
		OrderDate:    issue,
		IssueDate:    issue,
		DeliveryDate: issue.AddDate(0, 0, 3),
		Status:       constants.POStatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	snapshot := models.HistoricalPerformance{VendorID: vendor.ID, Date: issue}
	if err := db.Create(&snapshot).Error; err != nil {
		t.Fatalf("create snapshot failed: %v", err)
	}

	if err := repo.Delete(vendor.ID); err != nil {
		t.Fatalf("delete vendor failed: %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.PurchaseOrder{}).Where("vendor_id = ?", vendor.ID).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected orders removed with vendor, got %d", orderCount)
	}
	var snapshotCount int64
	if err := db.Model(&models.HistoricalPerformance{}).Where("vendor_id = ?", vendor.ID).Count(&snapshotCount).Error; err != nil {
		t.Fatalf("count snapshots failed: %v", err)
	}
	if snapshotCount != 0 {
		t.Fatalf("expected snapshots removed with vendor, got %d", snapshotCount)
	}
}
