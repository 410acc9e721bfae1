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

func setupPurchaseOrderRepositoryTest(t *testing.T) (*GormPurchaseOrderRepository, *gorm.DB, uint) {
	t.Helper()
	dsn := fmt.Sprintf("file:purchase_order_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.PurchaseOrder{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	vendor := models.Vendor{Name: "测试供应商", VendorCode: "VND-R-001"}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}
	return NewPurchaseOrderRepository(db), db, vendor.ID
}

func makeOrder(vendorID uint, poNumber, status string) models.PurchaseOrder {
	issue := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return models.PurchaseOrder{
		PONumber:     poNumber,
		VendorID:     vendorID,
		OrderDate:    issue,
		IssueDate:    issue,
		DeliveryDate: issue.AddDate(0, 0, 5),
		Status:       status,
		Quantity:     10,
	}
}

func TestGetStatusByID(t *testing.T) {
	repo, _, vendorID := setupPurchaseOrderRepositoryTest(t)

	order := makeOrder(vendorID, "PO-R-001", constants.POStatusPending)
	if err := repo.Create(&order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	status, exists, err := repo.GetStatusByID(order.ID)
	if err != nil {
		t.Fatalf("get status failed: %v", err)
	}
	if !exists || status != constants.POStatusPending {
		t.Fatalf("unexpected status result: %q exists=%v", status, exists)
	}

	_, exists, err = repo.GetStatusByID(9999)
	if err != nil {
		t.Fatalf("get status for missing order failed: %v", err)
	}
	if exists {
		t.Fatalf("expected missing order to report not exists")
	}
}

func TestGetByPONumberMissing(t *testing.T) {
	repo, _, _ := setupPurchaseOrderRepositoryTest(t)

	order, err := repo.GetByPONumber("PO-R-NONE")
	if err != nil {
		t.Fatalf("get by po number failed: %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil for missing po number, got %+v", order)
	}
}

func TestListFiltersByVendorAndStatus(t *testing.T) {
	repo, db, vendorID := setupPurchaseOrderRepositoryTest(t)

	other := models.Vendor{Name: "另一家供应商", VendorCode: "VND-R-002"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create vendor failed: %v", err)
	}

	orders := []models.PurchaseOrder{
		makeOrder(vendorID, "PO-R-010", constants.POStatusPending),
		makeOrder(vendorID, "PO-R-011", constants.POStatusCompleted),
		makeOrder(other.ID, "PO-R-012", constants.POStatusCompleted),
	}
	for i := range orders {
		if err := repo.Create(&orders[i]); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	completed, total, err := repo.List(PurchaseOrderListFilter{VendorID: vendorID, Status: constants.POStatusCompleted, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(completed) != 1 || completed[0].PONumber != "PO-R-011" {
		t.Fatalf("unexpected filtered result: total=%d orders=%+v", total, completed)
	}

	all, total, err := repo.List(PurchaseOrderListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("expected all orders, got total=%d len=%d", total, len(all))
	}
}

func TestListByVendorOrdersByID(t *testing.T) {
	repo, _, vendorID := setupPurchaseOrderRepositoryTest(t)

	first := makeOrder(vendorID, "PO-R-020", constants.POStatusPending)
	second := makeOrder(vendorID, "PO-R-021", constants.POStatusCompleted)
	if err := repo.Create(&first); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.Create(&second); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	orders, err := repo.ListByVendor(vendorID)
	if err != nil {
		t.Fatalf("list by vendor failed: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != first.ID || orders[1].ID != second.ID {
		t.Fatalf("unexpected order sequence: %+v", orders)
	}
}
