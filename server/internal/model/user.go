package model

// 系统角色：admin > editor > viewer
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

type User struct {
	BaseModel
	Username     string  `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        *string `gorm:"uniqueIndex;size:100" json:"email"` // 可空，空时不占唯一索引
	PasswordHash string  `gorm:"size:255;not null" json:"-"`

	// 系统级角色 (admin, editor, viewer)
	Role string `gorm:"size:20;default:'viewer'" json:"role"`
}

// IsValidRole 校验角色取值
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}
