package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind 错误类别，Handler 层据此映射 HTTP 状态码
type Kind int

const (
	KindUnauthenticated Kind = iota + 1 // 未登录 / 令牌无效
	KindForbidden                       // 角色权限不足
	KindNotFound                        // 实体不存在
	KindDuplicateKey                    // 唯一键冲突
	KindEmptySelection                  // 批量操作没选中任何 id
	KindUnsupportedOp                   // 不支持的批量操作
	KindValidation                      // 参数校验失败
	KindHasDependents                   // 存在依赖，拒绝删除
	KindStore                           // 存储层故障
)

// Error 携带类别和面向用户的提示信息
type Error struct {
	Kind Kind
	Msg  string
	Err  error // 底层错误，可为空
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf 取出错误类别；非 *Error 一律按存储故障处理
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Message 取出面向用户的提示；非 *Error 返回兜底文案
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "服务器内部错误"
}

// pgUniqueViolation Postgres 唯一约束冲突的 SQLSTATE
const pgUniqueViolation = "23505"

// IsUniqueViolation 判断是否唯一键冲突
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// FromDB 把存储层错误翻译成领域错误
// notFoundMsg / duplicateMsg 是对应场景的提示文案
func FromDB(err error, notFoundMsg, duplicateMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return New(KindNotFound, notFoundMsg)
	}
	if IsUniqueViolation(err) {
		return New(KindDuplicateKey, duplicateMsg)
	}
	return Wrap(KindStore, "数据库操作失败", err)
}
