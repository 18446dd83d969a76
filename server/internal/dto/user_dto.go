package dto

type CreateUserReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// UpdateUserReq 管理员改密码/角色，只更新传了的字段
type UpdateUserReq struct {
	Password Optional[string] `json:"password"`
	Role     Optional[string] `json:"role"`
}

type UserItem struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"` // YYYY-MM-DD
}

type UserListResp struct {
	Items []UserItem `json:"items"`
}
