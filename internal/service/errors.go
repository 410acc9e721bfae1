package service

import "errors"

// 服务层统一错误定义
var (
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrVendorInvalid      = errors.New("vendor invalid")
	ErrVendorCodeTaken    = errors.New("vendor code already exists")
	ErrOrderNotFound      = errors.New("purchase order not found")
	ErrOrderInvalid       = errors.New("purchase order invalid")
	ErrOrderStatusInvalid = errors.New("purchase order status invalid")
	ErrPONumberTaken      = errors.New("po number already exists")
	ErrSnapshotNotFound   = errors.New("historical performance not found")
)
