package apperr

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromDB(t *testing.T) {
	assert.Nil(t, FromDB(nil, "", ""))

	err := FromDB(gorm.ErrRecordNotFound, "分类不存在", "分类名称已存在")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "分类不存在", Message(err))

	err = FromDB(gorm.ErrDuplicatedKey, "分类不存在", "分类名称已存在")
	assert.Equal(t, KindDuplicateKey, KindOf(err))
	assert.Equal(t, "分类名称已存在", Message(err))

	// Postgres 原生 23505 也要认出来
	pgErr := &pgconn.PgError{Code: "23505"}
	err = FromDB(pgErr, "x", "重复")
	assert.Equal(t, KindDuplicateKey, KindOf(err))

	// 其他错误归为存储故障，底层错误保留在链上
	cause := errors.New("connection refused")
	err = FromDB(cause, "x", "y")
	assert.Equal(t, KindStore, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestKindOfAndMessage_Fallback(t *testing.T) {
	// 非 *Error 一律按存储故障处理，文案兜底
	plain := errors.New("boom")
	assert.Equal(t, KindStore, KindOf(plain))
	assert.Equal(t, "服务器内部错误", Message(plain))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindStore, "外层提示", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "外层提示")
	assert.Contains(t, err.Error(), "root cause")
}
