package model

// Company 公司档案，name 唯一（导入时按 name 去重）
type Company struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Domain      string `gorm:"size:255" json:"domain"`
	Website     string `gorm:"size:512" json:"website"`
	Address     string `gorm:"size:255" json:"address"`
	TeamInfo    string `gorm:"type:text" json:"team_info"`
	FundingInfo string `gorm:"type:text" json:"funding_info"`
	Field       string `gorm:"size:255" json:"field"`
	Product     string `gorm:"type:text" json:"product"`
	Problem     string `gorm:"type:text" json:"problem"`
	Method      string `gorm:"type:text" json:"method"`
	Difference  string `gorm:"type:text" json:"difference"`
	TechCore    string `gorm:"type:text" json:"tech_core"`
	BizModel    string `gorm:"type:text" json:"biz_model"`
	Partners    string `gorm:"type:text" json:"partners"`
	Clients     string `gorm:"type:text" json:"clients"`
	Notes       string `gorm:"type:text" json:"notes"`
	SourceLink  string `gorm:"size:512" json:"source_link"`
}

// CompanyConcept 公司-概念多对多中间表，二元组唯一
// 两端任意一方删除时级联清掉关联行
type CompanyConcept struct {
	ID        uint `gorm:"primarykey" json:"id"`
	CompanyID uint `gorm:"uniqueIndex:idx_company_concept;not null" json:"company_id"`
	ConceptID uint `gorm:"uniqueIndex:idx_company_concept;not null" json:"concept_id"`

	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	Concept Concept `gorm:"foreignKey:ConceptID;constraint:OnDelete:CASCADE" json:"-"`
}
