package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectUpdate 项目进展记录
type ProjectUpdate struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID     primitive.ObjectID `bson:"projectId" json:"projectId"`
	UpdateText    string             `bson:"updateText" json:"updateText"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedBy     string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedByName string             `bson:"createdByName,omitempty" json:"createdByName,omitempty"`
}

// CreateProjectUpdateInput 新增进展请求
type CreateProjectUpdateInput struct {
	UpdateText string `json:"updateText" binding:"required,notblank,max=4000"`
}
