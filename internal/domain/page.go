package domain

// ListQuery 列表查询参数；page/size 与 skip/limit 二选一，skip/limit 优先
type ListQuery struct {
	Page   int
	Size   int
	Skip   int
	Limit  int
	Sort   string // "title" 升序，"-title" 降序
	Search string
	Status string // "" | active | deleted

	// Published 只看上架商品，其它实体忽略
	Published bool
}

type Pagination struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

func (p Page[T]) Rows() any {
	if p.Items == nil {
		return []T{}
	}
	return p.Items
}

func (p Page[T]) Meta() Pagination { return p.Pagination }
