package api

import (
	"strconv"

	"github.com/vendor-next/internal/http/response"
	"github.com/vendor-next/internal/queue"
	"github.com/vendor-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetVendorPerformance 读取供应商当前四项绩效指标
func (h *Handler) GetVendorPerformance(c *gin.Context) {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid vendor id", nil)
		return
	}

	metrics, err := h.PerformanceService.GetPerformance(c.Request.Context(), vendorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, metrics)
}

// CreatePerformanceSnapshot 将供应商当前指标固化为历史快照。
// ?async=true 且队列可用时入队异步执行，否则同步写入。
func (h *Handler) CreatePerformanceSnapshot(c *gin.Context) {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid vendor id", nil)
		return
	}

	async, _ := strconv.ParseBool(c.DefaultQuery("async", "false"))
	if async && h.QueueClient.Enabled() {
		// 异步路径仍先校验供应商存在，避免入队注定失败的任务
		if _, err := h.VendorService.Get(vendorID); err != nil {
			respondServiceError(c, err)
			return
		}
		if err := h.QueueClient.EnqueuePerformanceSnapshot(queue.PerformanceSnapshotPayload{VendorID: vendorID}); err != nil {
			respondError(c, response.CodeInternal, "failed to enqueue snapshot task", err)
			return
		}
		requestLog(c).Infow("performance_snapshot_enqueued", "vendor_id", vendorID)
		response.Success(c, gin.H{
			"vendor_id": vendorID,
			"queued":    true,
		})
		return
	}

	record, err := h.PerformanceService.CreateSnapshot(vendorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, record)
}

// GetPerformanceHistory 查询历史绩效快照，按快照时间倒序
func (h *Handler) GetPerformanceHistory(c *gin.Context) {
	page, pageSize := parsePagination(c)

	records, total, err := h.PerformanceService.ListSnapshots(repository.HistoricalPerformanceListFilter{
		Page:     page,
		PageSize: pageSize,
		VendorID: parseUintQuery(c, "vendor_id"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch performance history", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, records, pagination)
}
