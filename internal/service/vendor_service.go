package service

import (
	"strings"

	"github.com/vendor-next/internal/models"
	"github.com/vendor-next/internal/repository"
)

// VendorService 供应商基础信息服务
type VendorService struct {
	vendorRepo repository.VendorRepository
}

// NewVendorService 创建供应商服务
func NewVendorService(vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// CreateVendorInput 创建供应商输入
type CreateVendorInput struct {
	Name           string
	ContactDetails string
	Address        string
	VendorCode     string
}

// UpdateVendorInput 更新供应商输入。nil 字段表示不修改。
// 四项绩效指标由指标引擎维护，不接受外部写入。
type UpdateVendorInput struct {
	Name           *string
	ContactDetails *string
	Address        *string
}

// Create 创建供应商
func (s *VendorService) Create(input CreateVendorInput) (*models.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	code := strings.TrimSpace(input.VendorCode)
	if name == "" || code == "" {
		return nil, ErrVendorInvalid
	}

	existing, err := s.vendorRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrVendorCodeTaken
	}

	vendor := &models.Vendor{
		Name:           name,
		ContactDetails: input.ContactDetails,
		Address:        input.Address,
		VendorCode:     code,
	}
	if err := s.vendorRepo.Create(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Get 获取供应商详情
func (s *VendorService) Get(id uint) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}
	return vendor, nil
}

// List 查询供应商列表
func (s *VendorService) List(filter repository.VendorListFilter) ([]models.Vendor, int64, error) {
	return s.vendorRepo.List(filter)
}

// Update 更新供应商基础信息
func (s *VendorService) Update(id uint, input UpdateVendorInput) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrVendorNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrVendorInvalid
		}
		vendor.Name = name
	}
	if input.ContactDetails != nil {
		vendor.ContactDetails = *input.ContactDetails
	}
	if input.Address != nil {
		vendor.Address = *input.Address
	}

	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Delete 删除供应商及其采购单与历史快照
func (s *VendorService) Delete(id uint) error {
	vendor, err := s.vendorRepo.GetByID(id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return ErrVendorNotFound
	}
	return s.vendorRepo.Delete(id)
}
