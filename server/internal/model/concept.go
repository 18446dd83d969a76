package model

import "time"

// Concept 行业概念
// category_id 是主分类；附加分类走 CategoryConcept 中间表
type Concept struct {
	BaseModel
	Term      string `gorm:"uniqueIndex;size:128;not null" json:"term"`
	PlainDef  string `gorm:"type:text" json:"plain_def"`
	Mechanism string `gorm:"type:text" json:"mechanism"`
	Examples  string `gorm:"type:text" json:"examples"`

	// MinIO 对象路径，形如 uploads/xxx.png
	ImagePath string `gorm:"size:512" json:"image_path"`

	// 最近使用时间：由调用方显式"标记使用"写入，查询不会自动更新
	LastUsed *time.Time `gorm:"index" json:"last_used"`

	// 主分类，可空（未分类）
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

// CategoryConcept 附加分类中间表：概念交叉挂在多个分类下
type CategoryConcept struct {
	ID         uint `gorm:"primarykey" json:"id"`
	CategoryID uint `gorm:"uniqueIndex:idx_category_concept;not null" json:"category_id"`
	ConceptID  uint `gorm:"uniqueIndex:idx_category_concept;not null" json:"concept_id"`

	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	Concept  Concept  `gorm:"foreignKey:ConceptID;constraint:OnDelete:CASCADE" json:"-"`
}
