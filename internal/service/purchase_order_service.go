package service

import (
	"strings"
	"time"

	"github.com/vendor-next/internal/constants"
	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"

	"gorm.io/gorm"
)

// PurchaseOrderService 采购单生命周期服务。
// 所有写入都经过 Save，保存后按触发规则联动指标重算。
type PurchaseOrderService struct {
	orderRepo  repository.PurchaseOrderRepository
	vendorRepo repository.VendorRepository
	metrics    *MetricsService
}

// NewPurchaseOrderService 创建采购单服务
func NewPurchaseOrderService(orderRepo repository.PurchaseOrderRepository, vendorRepo repository.VendorRepository, metrics *MetricsService) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:  orderRepo,
		vendorRepo: vendorRepo,
		metrics:    metrics,
	}
}

// CreatePurchaseOrderInput 创建采购单输入
type CreatePurchaseOrderInput struct {
	PONumber      string
	VendorID      uint
	OrderDate     time.Time
	DeliveryDate  time.Time
	IssueDate     time.Time
	Items         models.JSON
	Quantity      int
	Status        string
	QualityRating *float64
	Issues        *string
}

// UpdatePurchaseOrderInput 更新采购单输入。nil 字段表示不修改。
type UpdatePurchaseOrderInput struct {
	OrderDate     *time.Time
	DeliveryDate  *time.Time
	IssueDate     *time.Time
	Items         models.JSON
	Quantity      *int
	Status        *string
	QualityRating *float64
	Issues        *string
}

// Create 创建采购单
func (s *PurchaseOrderService) Create(input CreatePurchaseOrderInput) (*models.PurchaseOrder, error) {
	poNumber := strings.TrimSpace(input.PONumber)
	if poNumber == "" || input.VendorID == 0 {
		return nil, ErrOrderInvalid
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.POStatusPending
	}
	if !constants.IsValidPOStatus(status) {
		return nil, ErrOrderStatusInvalid
	}

	existing, err := s.orderRepo.GetByPONumber(poNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPONumberTaken
	}

	vendor, err := s.vendorRepo.GetByID(input.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	order := &models.PurchaseOrder{
		PONumber:      poNumber,
		VendorID:      input.VendorID,
		OrderDate:     input.OrderDate,
		DeliveryDate:  input.DeliveryDate,
		IssueDate:     input.IssueDate,
		Items:         input.Items,
		Quantity:      input.Quantity,
		Status:        status,
		QualityRating: input.QualityRating,
		Issues:        input.Issues,
	}
	if err := s.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update 更新采购单字段后走统一保存路径
func (s *PurchaseOrderService) Update(id uint, input UpdatePurchaseOrderInput) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = *input.DeliveryDate
	}
	if input.IssueDate != nil {
		order.IssueDate = *input.IssueDate
	}
	if input.Items != nil {
		order.Items = input.Items
	}
	if input.Quantity != nil {
		order.Quantity = *input.Quantity
	}
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if !constants.IsValidPOStatus(status) {
			return nil, ErrOrderStatusInvalid
		}
		order.Status = status
	}
	if input.QualityRating != nil {
		order.QualityRating = input.QualityRating
	}
	if input.Issues != nil {
		order.Issues = input.Issues
	}

	if err := s.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Save 持久化采购单并按触发规则重算供应商指标。
// 保存前单独回读已落库状态用于状态变更判断，整个序列在同一事务内执行。
func (s *PurchaseOrderService) Save(order *models.PurchaseOrder) error {
	if order == nil {
		return ErrOrderInvalid
	}
	if !constants.IsValidPOStatus(order.Status) {
		return ErrOrderStatusInvalid
	}

	var recomputed bool
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		isNew := order.ID == 0
		var prevStatus string
		if !isNew {
			status, exists, err := orderRepo.GetStatusByID(order.ID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrOrderNotFound
			}
			prevStatus = status
		}

		if isNew {
			if err := orderRepo.Create(order); err != nil {
				return err
			}
		} else {
			if err := orderRepo.Save(order); err != nil {
				return err
			}
		}

		if !shouldRecompute(isNew, prevStatus, order) {
			return nil
		}
		recomputed = true
		return s.metrics.RecomputeTx(tx, order.VendorID)
	})
	if err != nil {
		return err
	}
	if recomputed {
		s.metrics.InvalidatePerformanceCache(order.VendorID)
	}
	return nil
}

// shouldRecompute 判断本次保存是否需要触发指标重算：
// 新建、状态变更，或已完成且带质量评分的采购单（即便本次保存未改动这两者）。
func shouldRecompute(isNew bool, prevStatus string, order *models.PurchaseOrder) bool {
	if isNew || order.Status != prevStatus {
		return true
	}
	return order.Status == constants.POStatusCompleted && order.QualityRating != nil
}

// Acknowledge 确认采购单。确认时间至多设置一次，重复调用为幂等空操作。
func (s *PurchaseOrderService) Acknowledge(id uint) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Acknowledged() {
		logger.Debugw("purchase_order_already_acknowledged", "po_id", order.ID, "po_number", order.PONumber)
		return order, nil
	}

	now := time.Now()
	order.AcknowledgmentDate = &now
	if err := s.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get 获取采购单详情
func (s *PurchaseOrderService) Get(id uint) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 查询采购单列表
func (s *PurchaseOrderService) List(filter repository.PurchaseOrderListFilter) ([]models.PurchaseOrder, int64, error) {
	return s.orderRepo.List(filter)
}

// Delete 删除采购单
func (s *PurchaseOrderService) Delete(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.Delete(id)
}
