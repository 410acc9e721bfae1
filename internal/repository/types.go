package repository

// VendorListFilter 查询供应商列表的过滤条件
type VendorListFilter struct {
	Page     int
	PageSize int
	Search   string // 按名称或编码模糊匹配
}

// PurchaseOrderListFilter 查询采购单列表的过滤条件
type PurchaseOrderListFilter struct {
	Page     int
	PageSize int
	VendorID uint
	Status   string
}

// HistoricalPerformanceListFilter 查询历史绩效快照的过滤条件
type HistoricalPerformanceListFilter struct {
	Page     int
	PageSize int
	VendorID uint
}
