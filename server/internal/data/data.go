package data

import (
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"iResearch/server/internal/conf"
	"iResearch/server/internal/model"
	"iResearch/server/internal/utils"
)

// TreeCacheKey 分类树缓存在 Redis 里的 key
const TreeCacheKey = "iresearch:category_tree"

// Data 结构体持有所有数据库句柄
type Data struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Minio  *minio.Client
	Bucket string
}

func NewData(cfg *conf.Config) (*Data, func(), error) {
	// -------------------------------------------------------
	// 1. 连接 Postgres + 自动迁移
	// -------------------------------------------------------
	db, err := gorm.Open(postgres.Open(cfg.Data.DatabaseSource), &gorm.Config{
		TranslateError: true, // 把驱动错误翻译成 gorm.ErrDuplicatedKey 等
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.CategoryRelation{},
		&model.Concept{},
		&model.CategoryConcept{},
		&model.Company{},
		&model.CompanyConcept{},
		&model.AuditLog{},
	); err != nil {
		return nil, nil, fmt.Errorf("schema migration failed: %v", err)
	}

	// 全文索引：term/plain_def/mechanism/examples 四列拼接建 GIN 索引
	// AutoMigrate 不会建表达式索引，手动补一条
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_concept_fulltext
		ON concepts USING GIN (
			to_tsvector('simple',
				coalesce(term,'') || ' ' || coalesce(plain_def,'') || ' ' ||
				coalesce(mechanism,'') || ' ' || coalesce(examples,''))
		)
	`).Error; err != nil {
		// 索引建不出来不影响主流程，LIKE 搜索仍然可用
		log.Printf("⚠️ 创建全文索引失败: %v", err)
	}

	log.Println("✅ 数据库表结构迁移完成")

	// 首次启动：用户表为空时创建默认管理员
	if err := bootstrapAdmin(db, cfg); err != nil {
		return nil, nil, fmt.Errorf("bootstrap admin failed: %v", err)
	}

	// -------------------------------------------------------
	// 2. 初始化 Redis
	// -------------------------------------------------------
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Data.RedisAddr,
		Password: cfg.Data.RedisPassword,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, nil, fmt.Errorf("redis ping failed: %v", err)
	}
	log.Println("✅ Redis 连接成功")

	// -------------------------------------------------------
	// 3. 初始化 MinIO
	// -------------------------------------------------------
	minioClient, err := minio.New(cfg.Data.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Data.MinioAccessKey, cfg.Data.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("minio init failed: %v", err)
	}

	// 自动创建 Bucket
	bucketName := cfg.Data.MinioBucket
	exists, err := minioClient.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, nil, fmt.Errorf("check minio bucket failed: %v", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, nil, fmt.Errorf("create minio bucket failed: %v", err)
		}
		log.Printf("🎉 MinIO Bucket '%s' 创建成功", bucketName)
	} else {
		log.Printf("✅ MinIO 连接成功 (Bucket '%s' 已存在)", bucketName)
	}

	d := &Data{
		DB:     db,
		Redis:  rdb,
		Minio:  minioClient,
		Bucket: bucketName,
	}

	// 构造清理函数
	cleanup := func() {
		log.Println("正在关闭数据层资源...")
		if sqlDB, err := d.DB.DB(); err == nil {
			sqlDB.Close()
		}
		d.Redis.Close()
	}

	return d, cleanup, nil
}

// DropTreeCache 丢弃分类树缓存
// 分类或概念有任何变更时调用；Redis 出错只打日志，不影响业务
func (d *Data) DropTreeCache(ctx context.Context) {
	if err := d.Redis.Del(ctx, TreeCacheKey).Err(); err != nil {
		log.Printf("⚠️ 清理分类树缓存失败: %v", err)
	}
}

// bootstrapAdmin 用户表为空时创建默认管理员账户
func bootstrapAdmin(db *gorm.DB, cfg *conf.Config) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(cfg.Auth.AdminPass)
	if err != nil {
		return err
	}

	email := "admin@example.com"
	admin := &model.User{
		Username:     cfg.Auth.AdminUser,
		Email:        &email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("默认管理员账户已创建: %s", cfg.Auth.AdminUser)
	log.Println("⚠️ 请在生产环境中修改默认密码！")
	return nil
}
