package api

import (
	"strings"
	"time"

	"github.com/vendor-next/internal/http/response"
	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"
	"github.com/vendor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePurchaseOrderRequest 创建采购单请求
type CreatePurchaseOrderRequest struct {
	PONumber      string      `json:"po_number" binding:"required"`
	VendorID      uint        `json:"vendor_id" binding:"required"`
	OrderDate     string      `json:"order_date" binding:"required"`
	DeliveryDate  string      `json:"delivery_date" binding:"required"`
	IssueDate     string      `json:"issue_date" binding:"required"`
	Items         models.JSON `json:"items"`
	Quantity      int         `json:"quantity"`
	Status        string      `json:"status"`
	QualityRating *float64    `json:"quality_rating"`
	Issues        *string     `json:"issues"`
}

// UpdatePurchaseOrderRequest 更新采购单请求，缺省字段不修改
type UpdatePurchaseOrderRequest struct {
	OrderDate     string      `json:"order_date"`
	DeliveryDate  string      `json:"delivery_date"`
	IssueDate     string      `json:"issue_date"`
	Items         models.JSON `json:"items"`
	Quantity      *int        `json:"quantity"`
	Status        *string     `json:"status"`
	QualityRating *float64    `json:"quality_rating"`
	Issues        *string     `json:"issues"`
}

// CreatePurchaseOrder 创建采购单
func (h *Handler) CreatePurchaseOrder(c *gin.Context) {
	var req CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	orderDate, err := parseTimeRequired(req.OrderDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order_date", err)
		return
	}
	deliveryDate, err := parseTimeRequired(req.DeliveryDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid delivery_date", err)
		return
	}
	issueDate, err := parseTimeRequired(req.IssueDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid issue_date", err)
		return
	}

	order, err := h.PurchaseOrderService.Create(service.CreatePurchaseOrderInput{
		PONumber:      req.PONumber,
		VendorID:      req.VendorID,
		OrderDate:     orderDate,
		DeliveryDate:  deliveryDate,
		IssueDate:     issueDate,
		Items:         req.Items,
		Quantity:      req.Quantity,
		Status:        req.Status,
		QualityRating: req.QualityRating,
		Issues:        req.Issues,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("purchase_order_created",
		"po_id", order.ID,
		"po_number", order.PONumber,
		"vendor_id", order.VendorID,
	)
	response.Success(c, order)
}

// GetPurchaseOrder 获取采购单详情
func (h *Handler) GetPurchaseOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid purchase order id", nil)
		return
	}

	order, err := h.PurchaseOrderService.Get(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetPurchaseOrders 查询采购单列表，支持按供应商和状态过滤
func (h *Handler) GetPurchaseOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)

	orders, total, err := h.PurchaseOrderService.List(repository.PurchaseOrderListFilter{
		Page:     page,
		PageSize: pageSize,
		VendorID: parseUintQuery(c, "vendor_id"),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch purchase orders", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// UpdatePurchaseOrder 更新采购单。保存后按触发规则联动指标重算。
func (h *Handler) UpdatePurchaseOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid purchase order id", nil)
		return
	}
	var req UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	orderDate, err := parseTimeNullable(req.OrderDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order_date", err)
		return
	}
	deliveryDate, err := parseTimeNullable(req.DeliveryDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid delivery_date", err)
		return
	}
	issueDate, err := parseTimeNullable(req.IssueDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid issue_date", err)
		return
	}

	order, err := h.PurchaseOrderService.Update(orderID, service.UpdatePurchaseOrderInput{
		OrderDate:     orderDate,
		DeliveryDate:  deliveryDate,
		IssueDate:     issueDate,
		Items:         req.Items,
		Quantity:      req.Quantity,
		Status:        req.Status,
		QualityRating: req.QualityRating,
		Issues:        req.Issues,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// AcknowledgePurchaseOrder 确认采购单，重复确认为幂等空操作
func (h *Handler) AcknowledgePurchaseOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid purchase order id", nil)
		return
	}

	order, err := h.PurchaseOrderService.Acknowledge(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("purchase_order_acknowledged",
		"po_id", order.ID,
		"po_number", order.PONumber,
	)
	response.Success(c, order)
}

// DeletePurchaseOrder 删除采购单
func (h *Handler) DeletePurchaseOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid purchase order id", nil)
		return
	}

	if err := h.PurchaseOrderService.Delete(orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"deleted": true,
	})
}

func parseTimeRequired(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(raw))
}

func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
