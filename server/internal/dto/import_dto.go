package dto

// ImportRecord 批量导入 JSON 里的一条公司记录
// explain 是 {概念术语: 定义} 的映射
type ImportRecord struct {
	CompanyName    string            `json:"company_name"`
	Website        string            `json:"website"`
	Address        string            `json:"address"`
	TeamInfo       string            `json:"team_info"`
	FundingInfo    string            `json:"funding_info"`
	ProductService string            `json:"product_service"`
	BizModel       string            `json:"biz_model"`
	Partners       string            `json:"partners"`
	Clients        string            `json:"clients"`
	Field          string            `json:"field"`
	Detail         string            `json:"detail"`
	Source         string            `json:"source"`
	Explain        map[string]string `json:"explain"`
}

type ImportResp struct {
	OK             bool     `json:"ok"`
	CompaniesAdded int      `json:"companies_added"`
	ConceptsAdded  int      `json:"concepts_added"`
	Errors         []string `json:"errors"`
}
