package queue

import (
	"encoding/json"

	"github.com/vendor-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPerformanceSnapshot 绩效快照任务
	TaskPerformanceSnapshot = constants.TaskPerformanceSnapshot
)

// PerformanceSnapshotPayload 绩效快照任务载荷
type PerformanceSnapshotPayload struct {
	VendorID uint `json:"vendor_id"`
}

// NewPerformanceSnapshotTask 创建绩效快照任务
func NewPerformanceSnapshotTask(payload PerformanceSnapshotPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPerformanceSnapshot, body), nil
}
