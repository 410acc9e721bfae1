package repository

import (
	"errors"

	"github.com/vendor-next/internal/models"

	"gorm.io/gorm"
)

// PurchaseOrderRepository 采购单数据访问接口
type PurchaseOrderRepository interface {
	Create(order *models.PurchaseOrder) error
	Save(order *models.PurchaseOrder) error
	GetByID(id uint) (*models.PurchaseOrder, error)
	GetByPONumber(poNumber string) (*models.PurchaseOrder, error)
	GetStatusByID(id uint) (string, bool, error)
	ListByVendor(vendorID uint) ([]models.PurchaseOrder, error)
	List(filter PurchaseOrderListFilter) ([]models.PurchaseOrder, int64, error)
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormPurchaseOrderRepository
}

// GormPurchaseOrderRepository GORM 实现
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository 创建采购单仓库
func NewPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPurchaseOrderRepository) WithTx(tx *gorm.DB) *GormPurchaseOrderRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseOrderRepository{db: tx}
}

// Create 创建采购单
func (r *GormPurchaseOrderRepository) Create(order *models.PurchaseOrder) error {
	return r.db.Create(order).Error
}

// Save 整行写回采购单
func (r *GormPurchaseOrderRepository) Save(order *models.PurchaseOrder) error {
	return r.db.Save(order).Error
}

// GetByID 根据 ID 获取采购单
func (r *GormPurchaseOrderRepository) GetByID(id uint) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByPONumber 根据编号获取采购单
func (r *GormPurchaseOrderRepository) GetByPONumber(poNumber string) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := r.db.Where("po_number = ?", poNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetStatusByID 单独读取已落库的状态，用于保存前的状态对比。
// 第二个返回值表示记录是否存在。
func (r *GormPurchaseOrderRepository) GetStatusByID(id uint) (string, bool, error) {
	var row struct {
		Status string
	}
	if err := r.db.Model(&models.PurchaseOrder{}).
		Select("status").
		Where("id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Status, true, nil
}

// ListByVendor 获取供应商的全部采购单（指标重算的数据源，单次读取保证一致）
func (r *GormPurchaseOrderRepository) ListByVendor(vendorID uint) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	if err := r.db.Where("vendor_id = ?", vendorID).Order("id asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// List 查询采购单列表
func (r *GormPurchaseOrderRepository) List(filter PurchaseOrderListFilter) ([]models.PurchaseOrder, int64, error) {
	var orders []models.PurchaseOrder
	query := r.db.Model(&models.PurchaseOrder{})

	if filter.VendorID != 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Delete 删除采购单
func (r *GormPurchaseOrderRepository) Delete(id uint) error {
	return r.db.Delete(&models.PurchaseOrder{}, id).Error
}
