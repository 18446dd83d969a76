package dto

type CompanyListReq struct {
	Q        string `form:"q"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=50"`
}

type CompanyItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Field     string `json:"field"`
	CreatedAt string `json:"created_at"` // YYYY-MM-DD
}

type CompanyListResp struct {
	Items    []CompanyItem `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

type CreateCompanyReq struct {
	Name        string `json:"name" binding:"required"`
	Domain      string `json:"domain"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	TeamInfo    string `json:"team_info"`
	FundingInfo string `json:"funding_info"`
	Field       string `json:"field"`
	Product     string `json:"product"`
	Problem     string `json:"problem"`
	Method      string `json:"method"`
	Difference  string `json:"difference"`
	TechCore    string `json:"tech_core"`
	BizModel    string `json:"biz_model"`
	Partners    string `json:"partners"`
	Clients     string `json:"clients"`
	Notes       string `json:"notes"`
	SourceLink  string `json:"source_link"`
}

// UpdateCompanyReq 全字段部分更新
type UpdateCompanyReq struct {
	Name        Optional[string] `json:"name"`
	Domain      Optional[string] `json:"domain"`
	Website     Optional[string] `json:"website"`
	Address     Optional[string] `json:"address"`
	TeamInfo    Optional[string] `json:"team_info"`
	FundingInfo Optional[string] `json:"funding_info"`
	Field       Optional[string] `json:"field"`
	Product     Optional[string] `json:"product"`
	Problem     Optional[string] `json:"problem"`
	Method      Optional[string] `json:"method"`
	Difference  Optional[string] `json:"difference"`
	TechCore    Optional[string] `json:"tech_core"`
	BizModel    Optional[string] `json:"biz_model"`
	Partners    Optional[string] `json:"partners"`
	Clients     Optional[string] `json:"clients"`
	Notes       Optional[string] `json:"notes"`
	SourceLink  Optional[string] `json:"source_link"`
}

type ConceptRef struct {
	ID       uint   `json:"id"`
	Term     string `json:"term"`
	PlainDef string `json:"plain_def"`
}

// CompanyDetail 公司详情：全字段 + 关联概念
type CompanyDetail struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Domain      string       `json:"domain"`
	Website     string       `json:"website"`
	Address     string       `json:"address"`
	TeamInfo    string       `json:"team_info"`
	FundingInfo string       `json:"funding_info"`
	Field       string       `json:"field"`
	Product     string       `json:"product"`
	Problem     string       `json:"problem"`
	Method      string       `json:"method"`
	Difference  string       `json:"difference"`
	TechCore    string       `json:"tech_core"`
	BizModel    string       `json:"biz_model"`
	Partners    string       `json:"partners"`
	Clients     string       `json:"clients"`
	Notes       string       `json:"notes"`
	SourceLink  string       `json:"source_link"`
	CreatedAt   string       `json:"created_at"`
	Concepts    []ConceptRef `json:"concepts"`
}

type AddCompanyConceptReq struct {
	Term string `json:"term" binding:"required"`
}

type BulkCompaniesReq struct {
	IDs []uint `json:"ids"`
	Op  string `json:"op"`
}
