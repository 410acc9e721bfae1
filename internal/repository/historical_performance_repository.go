package repository

import (
	"errors"

	"github.com/vendor-next/internal/models"

	"gorm.io/gorm"
)

// HistoricalPerformanceRepository 历史绩效快照数据访问接口。只增只读，不提供更新。
type HistoricalPerformanceRepository interface {
	Create(record *models.HistoricalPerformance) error
	GetByID(id uint) (*models.HistoricalPerformance, error)
	List(filter HistoricalPerformanceListFilter) ([]models.HistoricalPerformance, int64, error)
}

// GormHistoricalPerformanceRepository GORM 实现
type GormHistoricalPerformanceRepository struct {
	db *gorm.DB
}

// NewHistoricalPerformanceRepository 创建历史绩效仓库
func NewHistoricalPerformanceRepository(db *gorm.DB) *GormHistoricalPerformanceRepository {
	return &GormHistoricalPerformanceRepository{db: db}
}

// Create 创建快照记录
func (r *GormHistoricalPerformanceRepository) Create(record *models.HistoricalPerformance) error {
	return r.db.Create(record).Error
}

// GetByID 根据 ID 获取快照
func (r *GormHistoricalPerformanceRepository) GetByID(id uint) (*models.HistoricalPerformance, error) {
	var record models.HistoricalPerformance
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List 查询快照列表
func (r *GormHistoricalPerformanceRepository) List(filter HistoricalPerformanceListFilter) ([]models.HistoricalPerformance, int64, error) {
	var records []models.HistoricalPerformance
	query := r.db.Model(&models.HistoricalPerformance{})

	if filter.VendorID != 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("date desc, id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
