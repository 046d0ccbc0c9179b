package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressType 项目阶段
type ProgressType string

const (
	ProgressBudgetary ProgressType = "Budgetary"
	ProgressTender    ProgressType = "Tender"
	ProgressWin       ProgressType = "Win"
	ProgressLoss      ProgressType = "Loss"
)

// ProgressTypes 全部阶段
var ProgressTypes = []ProgressType{ProgressBudgetary, ProgressTender, ProgressWin, ProgressLoss}

// IsValid 判断阶段是否合法
func (p ProgressType) IsValid() bool {
	for _, v := range ProgressTypes {
		if p == v {
			return true
		}
	}
	return false
}

// ProspectType 线索热度
type ProspectType string

const (
	ProspectHot    ProspectType = "Hot Prospect"
	ProspectNormal ProspectType = "Normal"
)

// IsValid 判断热度是否合法
func (p ProspectType) IsValid() bool {
	return p == ProspectHot || p == ProspectNormal
}

// ErrInvalidAmount 金额不是非负数字
var ErrInvalidAmount = errors.New("value must be a non-negative number")

// Amount 项目金额，JSON 中可以是数字，也可以是带千分位逗号的字符串
type Amount float64

// UnmarshalJSON 解析 1250000 / "1,250,000" 两种写法
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return ErrInvalidAmount
	}
	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ErrInvalidAmount
		}
		text = s
	}
	v, err := ParseAmount(text)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAmount 去掉千分位逗号和空白后解析
func ParseAmount(s string) (Amount, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return Amount(v), nil
}

// Project 项目（报价/商机）
type Project struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
	NoQuote       string             `bson:"noQuote" json:"noQuote"`
	ProjectName   string             `bson:"projectName" json:"projectName"`
	CustomerID    primitive.ObjectID `bson:"customerId" json:"customerId"`
	Value         float64            `bson:"value" json:"value"`
	ProgressType  ProgressType       `bson:"progressType" json:"progressType"`
	Prospect      ProspectType       `bson:"prospect" json:"prospect"`
	CreatedBy     string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedByName string             `bson:"createdByName,omitempty" json:"createdByName,omitempty"`
}

// ProjectRequest 创建/更新项目请求
type ProjectRequest struct {
	NoQuote      string       `json:"noQuote" binding:"required,notblank,max=100"`
	ProjectName  string       `json:"projectName" binding:"required,notblank,max=200"`
	CustomerID   string       `json:"customerId" binding:"required"`
	Value        *Amount      `json:"value" binding:"required"`
	ProgressType ProgressType `json:"progressType"`
	Prospect     ProspectType `json:"prospect"`
}

// LatestUpdate 列表中展示的最近一次进展
type LatestUpdate struct {
	UpdateText string    `json:"updateText"`
	Snippet    string    `json:"snippet"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProjectListItem 项目列表行
type ProjectListItem struct {
	Project
	CustomerName string        `json:"customerName"`
	LatestUpdate *LatestUpdate `json:"latestUpdate"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []ProjectListItem `json:"projects"`
}
