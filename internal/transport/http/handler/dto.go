package handler

import "storefront-api/internal/domain"

// listQuery 各列表接口共用的查询参数
type listQuery struct {
	Page   int    `form:"page"   binding:"omitempty,min=1"`
	Size   int    `form:"size"   binding:"omitempty,min=1"`
	Skip   int    `form:"skip"   binding:"omitempty,min=0"`
	Limit  int    `form:"limit"  binding:"omitempty,min=1"`
	Sort   string `form:"sort"   binding:"omitempty,max=32"`
	Search string `form:"search" binding:"omitempty,searchterm"`
	Status string `form:"status" binding:"omitempty,oneof=active deleted"`
}

func (q listQuery) toQuery() domain.ListQuery {
	return domain.ListQuery{
		Page:   q.Page,
		Size:   q.Size,
		Skip:   q.Skip,
		Limit:  q.Limit,
		Sort:   q.Sort,
		Search: q.Search,
		Status: q.Status,
	}
}

type idOut struct {
	ID uint `json:"id"`
}

type none struct{}

// confirm 改密码时两次输入必须一致
func confirm(password, confirmation *string) error {
	if password == nil {
		return nil
	}
	if confirmation == nil || *confirmation != *password {
		return domain.BadRequest("", domain.FieldError{
			Field:   "password_confirmation",
			Message: "does not match",
		})
	}
	return nil
}
