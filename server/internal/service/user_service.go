package service

import (
	"iResearch/server/internal/apperr"
	"iResearch/server/internal/dto"
	"iResearch/server/internal/model"
	"iResearch/server/internal/repository"
	"iResearch/server/internal/utils"
)

// UserService 用户管理（仅管理员可调）
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List 用户列表，按创建时间倒序
func (s *UserService) List() (*dto.UserListResp, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "获取用户列表失败", err)
	}

	items := make([]dto.UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.UserItem{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format("2006-01-02"),
		})
	}
	return &dto.UserListResp{Items: items}, nil
}

// Create 创建新用户
func (s *UserService) Create(req dto.CreateUserReq) (uint, error) {
	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}
	if !model.IsValidRole(role) {
		return 0, apperr.New(apperr.KindValidation, "无效的角色")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindStore, "密码加密失败", err)
	}

	var email *string
	if req.Email != "" {
		email = &req.Email
	}

	user := &model.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		return 0, apperr.FromDB(err, "用户不存在", "用户名或邮箱已存在")
	}
	return user.ID, nil
}

// Update 管理员改密码/角色，只更新传了的字段
func (s *UserService) Update(id uint, req dto.UpdateUserReq) error {
	updates := map[string]interface{}{}

	if req.Password.Set {
		hash, err := utils.HashPassword(req.Password.Value)
		if err != nil {
			return apperr.Wrap(apperr.KindStore, "密码加密失败", err)
		}
		updates["password_hash"] = hash
	}
	if req.Role.Set {
		if !model.IsValidRole(req.Role.Value) {
			return apperr.New(apperr.KindValidation, "无效的角色")
		}
		updates["role"] = req.Role.Value
	}

	if len(updates) == 0 {
		return apperr.New(apperr.KindValidation, "没有要更新的字段")
	}

	rows, err := s.repo.Updates(id, updates)
	if err != nil {
		return apperr.FromDB(err, "用户不存在", "用户名或邮箱已存在")
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "用户不存在")
	}
	return nil
}

// Delete 删除用户；不允许删除自己（业务不变式，不是角色问题）
func (s *UserService) Delete(id uint, currentUserID uint) error {
	if id == currentUserID {
		return apperr.New(apperr.KindValidation, "不能删除自己")
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		return apperr.Wrap(apperr.KindStore, "删除用户失败", err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "用户不存在")
	}
	return nil
}
