package dto

// ConceptListReq 概念列表查询参数
// cat_id 约定: 空=不筛选, -1=未分类, -2=最近使用, 其他=具体分类 id
// use_ft=1 时走全文检索，否则 LIKE 子串匹配
type ConceptListReq struct {
	Q        string `form:"q"`
	CatID    string `form:"cat_id"`
	Sort     string `form:"sort,default=term"` // term / last_used
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=50"`
	UseFT    string `form:"use_ft"`
}

type ConceptItem struct {
	ID         uint    `json:"id"`
	Term       string  `json:"term"`
	PlainDef   string  `json:"plain_def"`
	Mechanism  string  `json:"mechanism"`
	Examples   string  `json:"examples"`
	CategoryID *uint   `json:"category_id"`
	Category   *string `json:"category"` // 主分类名，可空
	LastUsed   *string `json:"last_used"`
}

type ConceptListResp struct {
	Items    []ConceptItem `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

type CreateConceptReq struct {
	Term       string `json:"term" binding:"required"`
	PlainDef   string `json:"plain_def"`
	Mechanism  string `json:"mechanism"`
	Examples   string `json:"examples"`
	CategoryID *uint  `json:"category_id"`
}

// UpdateConceptReq 部分更新；extra_categories 一旦传了就整组替换附加分类
// last_used 传 true 表示"标记使用"，写入当前时间
type UpdateConceptReq struct {
	Term            Optional[string] `json:"term"`
	PlainDef        Optional[string] `json:"plain_def"`
	Mechanism       Optional[string] `json:"mechanism"`
	Examples        Optional[string] `json:"examples"`
	CategoryID      Optional[*uint]  `json:"category_id"`
	LastUsed        Optional[bool]   `json:"last_used"`
	ExtraCategories Optional[[]uint] `json:"extra_categories"`
}

// QuickUpdateConceptReq 快速更新：不碰附加分类
type QuickUpdateConceptReq struct {
	Term       Optional[string] `json:"term"`
	PlainDef   Optional[string] `json:"plain_def"`
	Mechanism  Optional[string] `json:"mechanism"`
	Examples   Optional[string] `json:"examples"`
	CategoryID Optional[*uint]  `json:"category_id"`
	LastUsed   Optional[bool]   `json:"last_used"`
}

// OnlyMarksUsed 只传了 last_used=true，别的字段都没动
func (r *QuickUpdateConceptReq) OnlyMarksUsed() bool {
	return r.LastUsed.Set && r.LastUsed.Value &&
		!r.Term.Set && !r.PlainDef.Set && !r.Mechanism.Set &&
		!r.Examples.Set && !r.CategoryID.Set
}

type MoveConceptReq struct {
	CategoryID *uint `json:"category_id"`
}

type BulkPayload struct {
	CategoryID *uint `json:"category_id"`
}

type BulkConceptsReq struct {
	IDs     []uint      `json:"ids"`
	Op      string      `json:"op"`
	Payload BulkPayload `json:"payload"`
}

type BulkResp struct {
	OK      bool  `json:"ok"`
	Deleted int64 `json:"deleted,omitempty"`
}

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ConceptDetail 概念详情：带主分类名和附加分类列表
type ConceptDetail struct {
	ID              uint          `json:"id"`
	Term            string        `json:"term"`
	PlainDef        string        `json:"plain_def"`
	Mechanism       string        `json:"mechanism"`
	Examples        string        `json:"examples"`
	ImagePath       string        `json:"image_path"`
	CategoryID      *uint         `json:"category_id"`
	Category        *string       `json:"category"`
	LastUsed        *string       `json:"last_used"`
	ExtraCategories []CategoryRef `json:"extra_categories"`
}
