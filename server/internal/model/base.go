package model

import (
	"time"
)

// BaseModel 替代 gorm.Model，方便自定义 JSON tag
// 注意：本系统的删除都是物理删除（概念/公司删了就是删了），
// 所以不带 gorm.DeletedAt，避免软删除残留行占住唯一索引
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
