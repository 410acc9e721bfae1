package api

import (
	"github.com/vendor-next/internal/http/response"
	"github.com/vendor-next/internal/repository"
	"github.com/vendor-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateVendorRequest 创建供应商请求
type CreateVendorRequest struct {
	Name           string `json:"name" binding:"required"`
	ContactDetails string `json:"contact_details"`
	Address        string `json:"address"`
	VendorCode     string `json:"vendor_code" binding:"required"`
}

// UpdateVendorRequest 更新供应商请求，缺省字段不修改
type UpdateVendorRequest struct {
	Name           *string `json:"name"`
	ContactDetails *string `json:"contact_details"`
	Address        *string `json:"address"`
}

// CreateVendor 创建供应商
func (h *Handler) CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	vendor, err := h.VendorService.Create(service.CreateVendorInput{
		Name:           req.Name,
		ContactDetails: req.ContactDetails,
		Address:        req.Address,
		VendorCode:     req.VendorCode,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("vendor_created", "vendor_id", vendor.ID, "vendor_code", vendor.VendorCode)
	response.Success(c, vendor)
}

// GetVendor 获取供应商详情
func (h *Handler) GetVendor(c *gin.Context) {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid vendor id", nil)
		return
	}

	vendor, err := h.VendorService.Get(vendorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, vendor)
}

// GetVendors 查询供应商列表
func (h *Handler) GetVendors(c *gin.Context) {
	page, pageSize := parsePagination(c)

	vendors, total, err := h.VendorService.List(repository.VendorListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch vendors", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, vendors, pagination)
}

// UpdateVendor 更新供应商基础信息。绩效指标字段只读，不在此接口暴露。
func (h *Handler) UpdateVendor(c *gin.Context) {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid vendor id", nil)
		return
	}
	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	vendor, err := h.VendorService.Update(vendorID, service.UpdateVendorInput{
		Name:           req.Name,
		ContactDetails: req.ContactDetails,
		Address:        req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, vendor)
}

// DeleteVendor 删除供应商，连带删除其采购单与历史快照
func (h *Handler) DeleteVendor(c *gin.Context) {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid vendor id", nil)
		return
	}

	if err := h.VendorService.Delete(vendorID); err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("vendor_deleted", "vendor_id", vendorID)
	response.Success(c, gin.H{
		"deleted": true,
	})
}
