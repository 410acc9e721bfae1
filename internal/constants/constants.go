package constants

// 采购单状态常量
const (
	POStatusPending   = "pending"
	POStatusCompleted = "completed"
	POStatusCanceled  = "canceled"
)

// POStatuses 全部合法采购单状态
var POStatuses = []string{
	POStatusPending,
	POStatusCompleted,
	POStatusCanceled,
}

// IsValidPOStatus 校验采购单状态取值
func IsValidPOStatus(status string) bool {
	for _, s := range POStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskPerformanceSnapshot = "task:performance_snapshot"
)

// 缓存 key 常量
const (
	CacheKeyVendorPerformance = "vendor:performance"
)
