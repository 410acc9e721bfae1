package models

import (
	"time"
)

// HistoricalPerformance 历史绩效快照表。记录创建后不再修改。
type HistoricalPerformance struct {
	ID                  uint      `gorm:"primarykey" json:"id"`                            // 主键
	VendorID            uint      `gorm:"index;not null" json:"vendor_id"`                 // 供应商ID
	Date                time.Time `gorm:"index;not null" json:"date"`                      // 快照时间
	OnTimeDeliveryRate  float64   `gorm:"not null" json:"on_time_delivery_rate"`           // 准时交付率
	QualityRatingAvg    float64   `gorm:"not null" json:"quality_rating_avg"`              // 质量评分均值
	AverageResponseTime float64   `gorm:"not null" json:"average_response_time"`           // 平均响应时间
	FulfillmentRate     float64   `gorm:"not null" json:"fulfillment_rate"`                // 履约率
	CreatedAt           time.Time `json:"created_at"`                                      // 创建时间

	// 关联
	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"` // 供应商信息
}

// TableName 指定表名
func (HistoricalPerformance) TableName() string {
	return "historical_performances"
}
