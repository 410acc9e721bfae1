package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vendor-next/internal/logger"
	"github.com/vendor-next/internal/provider"
	"github.com/vendor-next/internal/queue"
	"github.com/vendor-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPerformanceSnapshot, c.handlePerformanceSnapshot)
}

func (c *Consumer) handlePerformanceSnapshot(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_performance_snapshot_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PerformanceSnapshotPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_performance_snapshot_unmarshal_failed", "error", err)
		return err
	}
	if payload.VendorID == 0 {
		logger.Debugw("worker_performance_snapshot_skip_invalid_payload", "vendor_id", payload.VendorID)
		return nil
	}

	record, err := c.PerformanceService.CreateSnapshot(payload.VendorID)
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			// 供应商可能在任务排队期间被删除，不重试
			logger.Debugw("worker_performance_snapshot_skip_vendor_not_found", "vendor_id", payload.VendorID)
			return nil
		}
		logger.Warnw("worker_performance_snapshot_failed", "vendor_id", payload.VendorID, "error", err)
		return err
	}

	logger.Infow("worker_performance_snapshot_done",
		"vendor_id", payload.VendorID,
		"snapshot_id", record.ID,
	)
	return nil
}
