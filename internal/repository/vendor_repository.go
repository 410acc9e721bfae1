package repository

import (
	"errors"

	"github.com/vendor-next/internal/models"

	"gorm.io/gorm"
)

// VendorRepository 供应商数据访问接口
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByCode(code string) (*models.Vendor, error)
	List(filter VendorListFilter) ([]models.Vendor, int64, error)
	Update(vendor *models.Vendor) error
	UpdateMetrics(id uint, metrics models.PerformanceMetrics) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormVendorRepository
}

// GormVendorRepository GORM 实现
type GormVendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository 创建供应商仓库
func NewVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVendorRepository) WithTx(tx *gorm.DB) *GormVendorRepository {
	if tx == nil {
		return r
	}
	return &GormVendorRepository{db: tx}
}

// Create 创建供应商
func (r *GormVendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// GetByID 根据 ID 获取供应商
func (r *GormVendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

// GetByCode 根据编码获取供应商
func (r *GormVendorRepository) GetByCode(code string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Where("vendor_code = ?", code).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

// List 查询供应商列表
func (r *GormVendorRepository) List(filter VendorListFilter) ([]models.Vendor, int64, error) {
	var vendors []models.Vendor
	query := r.db.Model(&models.Vendor{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR vendor_code LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id asc").Find(&vendors).Error; err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

// Update 更新供应商基础信息
func (r *GormVendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

// UpdateMetrics 一次写入四项绩效指标
func (r *GormVendorRepository) UpdateMetrics(id uint, metrics models.PerformanceMetrics) error {
	return r.db.Model(&models.Vendor{}).Where("id = ?", id).Updates(map[string]interface{}{
		"on_time_delivery_rate": metrics.OnTimeDeliveryRate,
		"quality_rating_avg":    metrics.QualityRatingAvg,
		"average_response_time": metrics.AverageResponseTime,
		"fulfillment_rate":      metrics.FulfillmentRate,
	}).Error
}

// Delete 删除供应商（关联采购单与快照级联删除）
func (r *GormVendorRepository) Delete(id uint) error {
	return r.db.Select("PurchaseOrders", "HistoricalPerformances").Delete(&models.Vendor{ID: id}).Error
}
