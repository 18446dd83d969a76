package dto

type CreateCategoryReq struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// UpdateCategoryReq parent_id 传 null 表示挪成根分类
type UpdateCategoryReq struct {
	Name     Optional[string] `json:"name"`
	ParentID Optional[*uint]  `json:"parent_id"`
}

type CategoryItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

type CategoryListResp struct {
	Items []CategoryItem `json:"items"`
}

// CategoryNode 分类树节点，count_main 是以它为主分类的概念数
type CategoryNode struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	ParentID  *uint           `json:"parent_id"`
	CountMain int64           `json:"count_main"`
	Children  []*CategoryNode `json:"children"`
}

type CategoryTreeResp struct {
	Tree        []*CategoryNode `json:"tree"`
	CountAll    int64           `json:"count_all"`
	CountUncat  int64           `json:"count_uncat"`
	CountRecent int64           `json:"count_recent"`
}

type CreateRelationReq struct {
	SubjectID uint   `json:"subject_id" binding:"required"`
	Predicate string `json:"predicate" binding:"required"`
	ObjectID  uint   `json:"object_id" binding:"required"`
}

type RelationItem struct {
	ID        uint   `json:"id"`
	SubjectID uint   `json:"subject_id"`
	Predicate string `json:"predicate"`
	ObjectID  uint   `json:"object_id"`
}

type RelationListResp struct {
	Items []RelationItem `json:"items"`
}
