package api

import (
	"errors"

	"github.com/vendor-next/internal/http/response"
	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLog 提供携带 request_id 的日志实例。
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError 返回错误响应，并在有原始错误时记录日志。
func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// respondServiceError 将服务层错误映射为业务状态码
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVendorNotFound):
		respondError(c, response.CodeNotFound, "vendor not found", nil)
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "purchase order not found", nil)
	case errors.Is(err, service.ErrSnapshotNotFound):
		respondError(c, response.CodeNotFound, "historical performance not found", nil)
	case errors.Is(err, service.ErrVendorCodeTaken):
		respondError(c, response.CodeConflict, "vendor code already exists", nil)
	case errors.Is(err, service.ErrPONumberTaken):
		respondError(c, response.CodeConflict, "po number already exists", nil)
	case errors.Is(err, service.ErrVendorInvalid),
		errors.Is(err, service.ErrOrderInvalid),
		errors.Is(err, service.ErrOrderStatusInvalid):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "internal error", err)
	}
}
