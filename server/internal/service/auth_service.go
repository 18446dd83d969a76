package service

import (
	"iResearch/server/internal/apperr"
	"iResearch/server/internal/dto"
	"iResearch/server/internal/repository"
	"iResearch/server/internal/utils"
)

type AuthService interface {
	Login(req dto.LoginReq) (*dto.LoginResp, error)
}

type authService struct {
	repo   repository.UserRepository
	secret string
}

func NewAuthService(repo repository.UserRepository, secret string) AuthService {
	return &authService{repo: repo, secret: secret}
}

// Login 登录业务逻辑
func (s *authService) Login(req dto.LoginReq) (*dto.LoginResp, error) {
	// 1. 查用户
	user, err := s.repo.GetByUsername(req.Username)
	if err != nil {
		// 用户不存在和密码错误给同一个提示，不泄露哪一半错了
		return nil, apperr.New(apperr.KindUnauthenticated, "用户名或密码不正确")
	}

	// 2. 比对密码
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.New(apperr.KindUnauthenticated, "用户名或密码不正确")
	}

	// 3. 签发 Token
	token, err := utils.GenerateToken(s.secret, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "Token 生成失败", err)
	}

	return &dto.LoginResp{
		Token: token,
		User: dto.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}
