package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"iResearch/server/internal/apperr"
	"iResearch/server/internal/data"
	"iResearch/server/internal/model"
)

// 概念配图允许的扩展名
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type FileService struct {
	Data *data.Data
}

func NewFileService(d *data.Data) *FileService {
	return &FileService{Data: d}
}

// UploadConceptImage 上传概念配图到 MinIO，并把对象路径写回概念行
func (s *FileService) UploadConceptImage(ctx context.Context, conceptID uint, fh *multipart.FileHeader) (string, error) {
	// 1. 概念必须存在
	var cnt int64
	if err := s.Data.DB.WithContext(ctx).Model(&model.Concept{}).
		Where("id = ?", conceptID).Count(&cnt).Error; err != nil {
		return "", apperr.Wrap(apperr.KindStore, "上传图片失败", err)
	}
	if cnt == 0 {
		return "", apperr.New(apperr.KindNotFound, "概念不存在")
	}

	// 2. 检查文件类型
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", apperr.New(apperr.KindValidation, "只支持 PNG, JPG, JPEG, GIF 格式")
	}

	// 3. 打开文件流
	src, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.KindStore, "读取上传文件失败", err)
	}
	defer src.Close()

	// 4. 生成对象名: uploads/{概念id}_{时间戳}_{uuid}{ext}
	objectName := fmt.Sprintf("uploads/%d_%s_%s%s",
		conceptID, time.Now().Format("20060102_150405"), uuid.New().String()[:8], ext)

	// 5. 上传到 MinIO
	if _, err := s.Data.Minio.PutObject(ctx, s.Data.Bucket, objectName, src, fh.Size, minio.PutObjectOptions{
		ContentType: fh.Header.Get("Content-Type"),
	}); err != nil {
		return "", apperr.Wrap(apperr.KindStore, "MinIO 上传失败", err)
	}

	// 6. 对象路径写回概念行
	if err := s.Data.DB.WithContext(ctx).Model(&model.Concept{}).
		Where("id = ?", conceptID).
		Update("image_path", objectName).Error; err != nil {
		return "", apperr.Wrap(apperr.KindStore, "保存图片路径失败", err)
	}

	return objectName, nil
}

// ArchiveImportFile 把导入的原始 JSON 文件归档到 MinIO，方便追溯
// 归档失败不影响导入本身，调用方只打日志
func (s *FileService) ArchiveImportFile(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := fmt.Sprintf("imports/%s_%s.json",
		time.Now().Format("20060102_150405"), uuid.New().String()[:8])

	if _, err := s.Data.Minio.PutObject(ctx, s.Data.Bucket, objectName, src, fh.Size, minio.PutObjectOptions{
		ContentType: "application/json",
	}); err != nil {
		return "", err
	}
	return objectName, nil
}

// FetchObject 按对象路径取文件（概念配图回显用）
func (s *FileService) FetchObject(ctx context.Context, objectName string) (*minio.Object, error) {
	obj, err := s.Data.Minio.GetObject(ctx, s.Data.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "读取文件失败", err)
	}
	return obj, nil
}
