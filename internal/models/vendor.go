package models

import (
	"time"
)

// Vendor 供应商表
type Vendor struct {
	ID             uint      `gorm:"primarykey" json:"id"`                 // 主键
	Name           string    `gorm:"type:varchar(255);not null" json:"name"` // 供应商名称
	ContactDetails string    `gorm:"type:text" json:"contact_details"`     // 联系方式
	Address        string    `gorm:"type:text" json:"address"`             // 地址
	VendorCode     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"vendor_code"` // 供应商编码

	// 四项绩效指标：由指标引擎重算写入，外部不可直接修改
	OnTimeDeliveryRate  float64 `gorm:"not null;default:0" json:"on_time_delivery_rate"` // 准时交付率（百分比）
	QualityRatingAvg    float64 `gorm:"not null;default:0" json:"quality_rating_avg"`    // 质量评分均值
	AverageResponseTime float64 `gorm:"not null;default:0" json:"average_response_time"` // 平均响应时间（小时）
	FulfillmentRate     float64 `gorm:"not null;default:0" json:"fulfillment_rate"`      // 履约率（百分比）

	CreatedAt time.Time `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time `json:"updated_at"`              // 更新时间

	// 关联
	PurchaseOrders          []PurchaseOrder         `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"purchase_orders,omitempty"`          // 采购单列表
	HistoricalPerformances  []HistoricalPerformance `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"historical_performances,omitempty"`  // 历史绩效快照
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}

// PerformanceMetrics 当前绩效指标视图
type PerformanceMetrics struct {
	OnTimeDeliveryRate  float64 `json:"on_time_delivery_rate"`
	QualityRatingAvg    float64 `json:"quality_rating_avg"`
	AverageResponseTime float64 `json:"average_response_time"`
	FulfillmentRate     float64 `json:"fulfillment_rate"`
}

// Metrics 提取供应商当前的四项指标
func (v *Vendor) Metrics() PerformanceMetrics {
	return PerformanceMetrics{
		OnTimeDeliveryRate:  v.OnTimeDeliveryRate,
		QualityRatingAvg:    v.QualityRatingAvg,
		AverageResponseTime: v.AverageResponseTime,
		FulfillmentRate:     v.FulfillmentRate,
	}
}
