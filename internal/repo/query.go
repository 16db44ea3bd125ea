package repo

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-api/internal/domain"
)

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

type Limits struct {
	DefaultSize int
	MaxSize     int
}

type Window struct {
	Page   int
	Offset int
	Limit  int
}

// Window skip/limit 优先，否则按 page/size；size 超过上限时截断
func (l Limits) Window(q domain.ListQuery) (Window, error) {
	if q.Page < 0 || q.Size < 0 || q.Skip < 0 || q.Limit < 0 {
		return Window{}, domain.BadRequest("Pagination parameters must not be negative")
	}
	def := l.DefaultSize
	if def <= 0 {
		def = 50
	}
	clamp := func(n int) int {
		if n == 0 {
			n = def
		}
		if l.MaxSize > 0 && n > l.MaxSize {
			n = l.MaxSize
		}
		return n
	}

	if q.Skip > 0 || q.Limit > 0 {
		limit := clamp(q.Limit)
		return Window{Page: q.Skip/limit + 1, Offset: q.Skip, Limit: limit}, nil
	}
	size := clamp(q.Size)
	page := max(1, q.Page)
	return Window{Page: page, Offset: (page - 1) * size, Limit: size}, nil
}

// Info size 为实际返回条数
func (w Window) Info(total int64, returned int) domain.Pagination {
	pages := 0
	if w.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(w.Limit)))
	}
	return domain.Pagination{
		Page:          w.Page,
		Size:          returned,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// SortColumns 排序白名单：请求里的字段名 -> 真实列
type SortColumns map[string]clause.Column

func (s SortColumns) Parse(token string) (clause.OrderByColumn, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		token = "id"
	}
	desc := strings.HasPrefix(token, "-")
	col, ok := s[strings.TrimPrefix(token, "-")]
	if !ok {
		return clause.OrderByColumn{}, domain.BadRequest(fmt.Sprintf("Cannot sort by %q", token))
	}
	return clause.OrderByColumn{Column: col, Desc: desc}, nil
}

var searchTerm = regexp.MustCompile(`^[\p{L} .'\-]{1,64}$`)

// ValidSearchTerm 至少要有一个字母，否则全文检索拿到的是空查询
func ValidSearchTerm(s string) bool {
	return searchTerm.MatchString(s) && len(words(s)) > 0
}

// ListSpec 校验过的列表参数；在借连接之前构建
type ListSpec struct {
	Window    Window
	Order     clause.OrderByColumn
	Search    string
	Status    string
	Published bool
}

func BuildListSpec(q domain.ListQuery, l Limits, sortable SortColumns) (ListSpec, error) {
	w, err := l.Window(q)
	if err != nil {
		return ListSpec{}, err
	}
	order, err := sortable.Parse(q.Sort)
	if err != nil {
		return ListSpec{}, err
	}
	search := strings.TrimSpace(q.Search)
	if search != "" && !ValidSearchTerm(search) {
		return ListSpec{}, domain.BadRequest("", domain.FieldError{
			Field:   "search",
			Message: "may only contain letters, spaces and . ' -",
		})
	}
	switch q.Status {
	case "", StatusActive, StatusDeleted:
	default:
		return ListSpec{}, domain.BadRequest(fmt.Sprintf("Unknown status %q", q.Status))
	}
	return ListSpec{Window: w, Order: order, Search: search, Status: q.Status, Published: q.Published}, nil
}

// Filter count 与分页查询共用同一谓词；deletedAt/searchCols 都是代码里的常量列名
func (s ListSpec) Filter(db *gorm.DB, deletedAt string, searchCols ...string) *gorm.DB {
	switch s.Status {
	case StatusActive:
		db = db.Where(deletedAt + " IS NULL")
	case StatusDeleted:
		db = db.Where(deletedAt + " IS NOT NULL")
	}
	if s.Search != "" && len(searchCols) > 0 {
		db = fullText(db, s.Search, searchCols)
	}
	return db
}

func (s ListSpec) Page(db *gorm.DB) *gorm.DB {
	return db.Order(s.Order).Offset(s.Window.Offset).Limit(s.Window.Limit)
}

func words(term string) []string {
	return strings.FieldsFunc(term, func(r rune) bool { return !unicode.IsLetter(r) })
}

func fullText(db *gorm.DB, term string, cols []string) *gorm.DB {
	switch db.Dialector.Name() {
	case "mysql":
		ws := words(term)
		for i, w := range ws {
			ws[i] = "+" + w + "*"
		}
		return db.Where(fmt.Sprintf("MATCH(%s) AGAINST (? IN BOOLEAN MODE)", strings.Join(cols, ", ")), strings.Join(ws, " "))
	case "postgres":
		ws := words(term)
		for i, w := range ws {
			ws[i] = w + ":*"
		}
		doc := make([]string, len(cols))
		for i, c := range cols {
			doc[i] = "coalesce(" + c + ", '')"
		}
		return db.Where(fmt.Sprintf("to_tsvector('simple', %s) @@ to_tsquery('simple', ?)", strings.Join(doc, " || ' ' || ")), strings.Join(ws, " & "))
	default:
		for _, w := range strings.Fields(strings.ToLower(term)) {
			ors := make([]string, len(cols))
			args := make([]any, len(cols))
			for i, c := range cols {
				ors[i] = "LOWER(" + c + ") LIKE ?"
				args[i] = "%" + w + "%"
			}
			db = db.Where("("+strings.Join(ors, " OR ")+")", args...)
		}
		return db
	}
}
