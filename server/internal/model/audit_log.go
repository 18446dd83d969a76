package model

import (
	"gorm.io/datatypes"
)

// AuditLog 操作审计日志：每次成功的写操作记一条
// Detail 里放操作的关键参数，例如 {"term": "RAG", "category_id": 3}
type AuditLog struct {
	BaseModel
	TraceID  string `gorm:"size:64;index" json:"trace_id"`
	UserID   uint   `gorm:"index" json:"user_id"`
	Username string `gorm:"size:50" json:"username"`

	// 动作: create / update / delete / move / bulk_move / bulk_delete / import / upload
	Action string `gorm:"size:32;index" json:"action"`
	// 实体: user / category / concept / company / batch
	Entity   string `gorm:"size:32;index" json:"entity"`
	EntityID uint   `json:"entity_id"`

	Detail datatypes.JSON `json:"detail"`
}
