package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerSector 客户行业
type CustomerSector string

const (
	SectorDataCenter CustomerSector = "Data Center"
	SectorOilAndGas  CustomerSector = "Oil and Gas"
	SectorCommercial CustomerSector = "Commercial"
	SectorIndustrial CustomerSector = "Industrial"
	SectorMining     CustomerSector = "Mining"
)

// CustomerSectors 全部行业，顺序即下拉框顺序
var CustomerSectors = []CustomerSector{
	SectorDataCenter,
	SectorOilAndGas,
	SectorCommercial,
	SectorIndustrial,
	SectorMining,
}

// IsValid 判断行业是否合法
func (s CustomerSector) IsValid() bool {
	for _, v := range CustomerSectors {
		if s == v {
			return true
		}
	}
	return false
}

// Customer 客户
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Sector    CustomerSector     `bson:"sector" json:"sector"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CustomerPIC 客户联系人 (person in charge)
type CustomerPIC struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	NamaPIC    string             `bson:"namaPic" json:"namaPic"`
	Email      string             `bson:"email" json:"email"`
	NoHP       string             `bson:"noHp" json:"noHp"`
	Jabatan    string             `bson:"jabatan" json:"jabatan"`
}

// CustomerDetail 客户详情（含联系人）
type CustomerDetail struct {
	Customer
	PICs []CustomerPIC `json:"pics"`
}

// CustomerPICInput 联系人表单项，ID 为空表示新增
type CustomerPICInput struct {
	ID      string `json:"id"`
	NamaPIC string `json:"namaPic" binding:"max=120"`
	Email   string `json:"email" binding:"omitempty,email"`
	NoHP    string `json:"noHp" binding:"max=40"`
	Jabatan string `json:"jabatan" binding:"max=120"`
}

// Trimmed 返回去除首尾空白后的副本
func (p CustomerPICInput) Trimmed() CustomerPICInput {
	return CustomerPICInput{
		ID:      strings.TrimSpace(p.ID),
		NamaPIC: strings.TrimSpace(p.NamaPIC),
		Email:   strings.TrimSpace(p.Email),
		NoHP:    strings.TrimSpace(p.NoHP),
		Jabatan: strings.TrimSpace(p.Jabatan),
	}
}

// IsEmpty 所有字段都为空
func (p CustomerPICInput) IsEmpty() bool {
	t := p.Trimmed()
	return t.NamaPIC == "" && t.Email == "" && t.NoHP == "" && t.Jabatan == ""
}

// CustomerRequest 创建/更新客户请求
type CustomerRequest struct {
	Name   string             `json:"name" binding:"required,notblank,max=200"`
	Sector CustomerSector     `json:"sector" binding:"required"`
	PICs   []CustomerPICInput `json:"pics" binding:"dive"`
}
