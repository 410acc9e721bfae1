package models

import (
	"time"
)

// PurchaseOrder 采购单表
type PurchaseOrder struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                    // 主键
	PONumber           string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"po_number"`  // 采购单编号
	VendorID           uint       `gorm:"index;not null" json:"vendor_id"`                         // 供应商ID
	OrderDate          time.Time  `gorm:"not null" json:"order_date"`                              // 下单时间
	DeliveryDate       time.Time  `gorm:"not null" json:"delivery_date"`                           // 交付时间
	IssueDate          time.Time  `gorm:"not null" json:"issue_date"`                              // 签发时间
	AcknowledgmentDate *time.Time `json:"acknowledgment_date"`                                     // 确认时间（acknowledge 操作至多设置一次）
	Items              JSON       `gorm:"type:json" json:"items"`                                  // 条目明细
	Quantity           int        `gorm:"not null;default:0" json:"quantity"`                      // 数量
	Status             string     `gorm:"type:varchar(20);index;not null" json:"status"`           // 状态（pending/completed/canceled）
	QualityRating      *float64   `json:"quality_rating"`                                          // 质量评分（可空）
	Issues             *string    `gorm:"type:text" json:"issues"`                                 // 问题记录（可空）
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt          time.Time  `json:"updated_at"`                                              // 更新时间

	// 关联
	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"` // 供应商信息
}

// TableName 指定表名
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// Acknowledged 判断采购单是否已确认
func (po *PurchaseOrder) Acknowledged() bool {
	return po.AcknowledgmentDate != nil
}
