package model

// Category 分类树节点
// parent_id 为空表示根分类，整体是一个森林
type Category struct {
	BaseModel
	Name     string `gorm:"uniqueIndex;size:128;not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent_id"`

	// 自引用：父分类删除时子分类置为根
	Parent *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
}

// 分类语义关系谓词
const (
	PredicateBroader  = "broader"
	PredicateNarrower = "narrower"
	PredicateRelated  = "related"
)

// CategoryRelation 分类之间的有向语义边，三元组唯一
type CategoryRelation struct {
	BaseModel
	SubjectID uint   `gorm:"uniqueIndex:idx_relation_triple;not null" json:"subject_id"`
	Predicate string `gorm:"uniqueIndex:idx_relation_triple;size:16;not null" json:"predicate"`
	ObjectID  uint   `gorm:"uniqueIndex:idx_relation_triple;not null" json:"object_id"`

	Subject Category `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
	Object  Category `gorm:"foreignKey:ObjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsValidPredicate 校验谓词取值
func IsValidPredicate(p string) bool {
	switch p {
	case PredicateBroader, PredicateNarrower, PredicateRelated:
		return true
	}
	return false
}
