package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront-api/internal/core/auth"
	"storefront-api/internal/repo"
	"storefront-api/internal/service"
	"storefront-api/internal/testkit"
	"storefront-api/pkg/utils"
)

func init() { gin.SetMode(gin.TestMode) }

type fixture struct {
	admin *gin.Engine
	api   *gin.Engine
	jwt   *auth.JWTer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testkit.NewDB(t)
	svc := service.New(service.Deps{
		Conns:  testkit.NewPool(t, db),
		Repos:  service.GormRepos(),
		Hasher: utils.Bcrypt{Cost: bcrypt.MinCost},
		Limits: repo.Limits{DefaultSize: 10, MaxSize: 50},
		Log:    zap.NewNop(),
	})
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "storefront-api", TTL: time.Minute}
	lim := Limits{RPS: 1000, Burst: 1000, Concurrency: 10, MaxBody: 1 << 20, Timeout: 5 * time.Second}
	return &fixture{
		admin: NewAdminEngine(zap.NewNop(), svc, j, lim),
		api:   NewAPIEngine(zap.NewNop(), svc, j, lim),
		jwt:   j,
	}
}

func (f *fixture) token(t *testing.T, uid uint, role string) string {
	t.Helper()
	tok, err := f.jwt.Issue(uid, role)
	require.NoError(t, err)
	return tok
}

type reply struct {
	Code int
	Body map[string]any
}

func call(t *testing.T, h http.Handler, method, path, token, body string) reply {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := reply{Code: w.Code}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out.Body), w.Body.String())
	return out
}

func (r reply) obj(key string) map[string]any {
	m, _ := r.Body[key].(map[string]any)
	return m
}

func (r reply) list(key string) []any {
	l, _ := r.Body[key].([]any)
	return l
}

const newAdmin = `{
	"first_name": "Ada",
	"last_name": "Lovelace",
	"email": "ada@example.com",
	"password": "analytical",
	"password_confirmation": "analytical"
}`

func TestAdminEngineRequiresAdminRole(t *testing.T) {
	f := newFixture(t)

	r := call(t, f.admin, http.MethodGet, "/admin/v1/admins", "", "")
	assert.Equal(t, http.StatusUnauthorized, r.Code)

	r = call(t, f.admin, http.MethodGet, "/admin/v1/admins", f.token(t, 5, "customer"), "")
	assert.Equal(t, http.StatusForbidden, r.Code)
	assert.Equal(t, "Forbidden", r.Body["message"])
}

func TestAdminLifecycle(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, 1000, "admin")

	r := call(t, f.admin, http.MethodPost, "/admin/v1/admins", tok, newAdmin)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, "Created", r.Body["message"])
	created := r.obj("admin")
	assert.Equal(t, "ada@example.com", created["email"])
	assert.Equal(t, "admin", created["user_role"])
	assert.NotContains(t, created, "password")
	id := created["id"].(float64)
	assert.Equal(t, float64(1), id)

	r = call(t, f.admin, http.MethodPost, "/admin/v1/admins", tok, newAdmin)
	assert.Equal(t, http.StatusConflict, r.Code)
	assert.Equal(t, "The email ada@example.com is already taken", r.Body["message"])

	r = call(t, f.admin, http.MethodGet, "/admin/v1/admins?size=5", tok, "")
	require.Equal(t, http.StatusOK, r.Code)
	assert.Len(t, r.list("admins"), 1)
	assert.Equal(t, map[string]any{
		"page": float64(1), "size": float64(1), "totalElements": float64(1), "totalPages": float64(1),
	}, r.obj("pagination"))

	r = call(t, f.admin, http.MethodPut, "/admin/v1/admins/1", tok, `{"is_super":true,"last_name":"King"}`)
	require.Equal(t, http.StatusOK, r.Code, r.Body)
	assert.Equal(t, "Updated", r.Body["message"])
	assert.Equal(t, true, r.obj("admin")["is_super"])
	assert.Equal(t, "King", r.obj("admin")["last_name"])

	r = call(t, f.admin, http.MethodDelete, "/admin/v1/admins/1", tok, "")
	require.Equal(t, http.StatusOK, r.Code, r.Body)
	assert.Equal(t, map[string]any{"id": float64(1)}, r.obj("admin"))

	r = call(t, f.admin, http.MethodDelete, "/admin/v1/admins/1", tok, "")
	assert.Equal(t, http.StatusNotFound, r.Code)

	r = call(t, f.admin, http.MethodPut, "/admin/v1/admins/1", tok, `{"first_name":"Grace"}`)
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = call(t, f.admin, http.MethodGet, "/admin/v1/admins?status=deleted", tok, "")
	require.Equal(t, http.StatusOK, r.Code)
	assert.Len(t, r.list("admins"), 1)

	r = call(t, f.admin, http.MethodPut, "/admin/v1/admins/1/restore", tok, "")
	require.Equal(t, http.StatusOK, r.Code, r.Body)
	assert.Equal(t, "Restored", r.Body["message"])

	r = call(t, f.admin, http.MethodPut, "/admin/v1/admins/1/restore", tok, "")
	assert.Equal(t, http.StatusNotFound, r.Code)
}

func TestAdminEngineRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, 1000, "admin")

	r := call(t, f.admin, http.MethodPost, "/admin/v1/admins", tok,
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"analytical","password_confirmation":"different"}`)
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, []any{map[string]any{"field": "password_confirmation", "message": "does not match"}}, r.Body["errors"])

	r = call(t, f.admin, http.MethodGet, "/admin/v1/admins?sort=password", tok, "")
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = call(t, f.admin, http.MethodGet, "/admin/v1/admins?status=gone", tok, "")
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = call(t, f.admin, http.MethodGet, "/admin/v1/admins/x", tok, "")
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = call(t, f.admin, http.MethodPut, "/admin/v1/admins/1", tok, `{"password":"longenough"}`)
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, []any{map[string]any{"field": "password_confirmation", "message": "does not match"}}, r.Body["errors"])
}

func TestUserCannotDeleteOwnAccount(t *testing.T) {
	f := newFixture(t)
	r := call(t, f.admin, http.MethodPost, "/admin/v1/users", f.token(t, 1000, "admin"),
		`{"first_name":"Bob","last_name":"Stone","email":"bob@example.com","password":"password1","password_confirmation":"password1"}`)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, "customer", r.obj("user")["user_role"])
	id := uint(r.obj("user")["id"].(float64))

	r = call(t, f.admin, http.MethodDelete, "/admin/v1/users/1", f.token(t, id, "admin"), "")
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, "You cannot delete your own account", r.Body["message"])

	r = call(t, f.admin, http.MethodDelete, "/admin/v1/users/1", f.token(t, 1000, "admin"), "")
	assert.Equal(t, http.StatusOK, r.Code)
}

func TestCatalogShowsOnlyLiveRecords(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, 1000, "admin")

	r := call(t, f.admin, http.MethodPost, "/admin/v1/categories", tok, `{"title":"Shoes"}`)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)

	r = call(t, f.admin, http.MethodPost, "/admin/v1/products", tok,
		`{"title":"Red shoes","slug":"red-shoes","active":true,"category_id":1}`)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	assert.Equal(t, "Shoes", r.obj("product")["category"])

	r = call(t, f.admin, http.MethodPost, "/admin/v1/products", tok, `{"title":"Blue shoes","slug":"blue-shoes"}`)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)

	r = call(t, f.admin, http.MethodPost, "/admin/v1/products", tok, `{"title":"Again","slug":"red-shoes"}`)
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, []any{map[string]any{"field": "slug", "message": "red-shoes is already taken"}}, r.Body["errors"])

	r = call(t, f.admin, http.MethodPost, "/admin/v1/products", tok, `{"title":"Ghost","slug":"ghost","category_id":99}`)
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, []any{map[string]any{"field": "category_id", "message": "does not exist"}}, r.Body["errors"])

	r = call(t, f.api, http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, r.Code)
	require.Len(t, r.list("products"), 1)
	assert.Equal(t, "red-shoes", r.list("products")[0].(map[string]any)["slug"])

	assert.Equal(t, http.StatusOK, call(t, f.api, http.MethodGet, "/api/v1/products/1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, call(t, f.api, http.MethodGet, "/api/v1/products/2", "", "").Code)

	r = call(t, f.api, http.MethodGet, "/api/v1/categories/1", "", "")
	require.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "Shoes", r.obj("category")["title"])

	r = call(t, f.admin, http.MethodDelete, "/admin/v1/categories/1", tok, "")
	require.Equal(t, http.StatusOK, r.Code)

	assert.Equal(t, http.StatusNotFound, call(t, f.api, http.MethodGet, "/api/v1/categories/1", "", "").Code)
	r = call(t, f.api, http.MethodGet, "/api/v1/categories", "", "")
	require.Equal(t, http.StatusOK, r.Code)
	assert.Empty(t, r.list("categories"))

	// 前台不接受 status 参数，也看不到已删除的分类
	r = call(t, f.api, http.MethodGet, "/api/v1/categories?status=deleted", "", "")
	require.Equal(t, http.StatusOK, r.Code)
	assert.Empty(t, r.list("categories"))
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	r := call(t, f.admin, http.MethodPost, "/admin/v1/users", f.token(t, 1000, "admin"),
		`{"first_name":"Cleo","last_name":"Park","email":"cleo@example.com","password":"password1","password_confirmation":"password1"}`)
	require.Equal(t, http.StatusCreated, r.Code, r.Body)
	me := f.token(t, uint(r.obj("user")["id"].(float64)), "customer")

	assert.Equal(t, http.StatusUnauthorized, call(t, f.api, http.MethodGet, "/api/v1/me", "", "").Code)

	r = call(t, f.api, http.MethodGet, "/api/v1/me", me, "")
	require.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "cleo@example.com", r.obj("user")["email"])

	r = call(t, f.api, http.MethodPut, "/api/v1/me", me, `{"first_name":"Cleopatra"}`)
	require.Equal(t, http.StatusOK, r.Code, r.Body)
	assert.Equal(t, "Cleopatra", r.obj("user")["first_name"])

	r = call(t, f.api, http.MethodPut, "/api/v1/me/password", me,
		`{"current_password":"wrong-one","new_password":"password2","password_confirmation":"password2"}`)
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Equal(t, []any{map[string]any{"field": "current_password", "message": "is not correct"}}, r.Body["errors"])

	r = call(t, f.api, http.MethodPut, "/api/v1/me/password", me,
		`{"current_password":"password1","new_password":"password2","password_confirmation":"password2"}`)
	assert.Equal(t, http.StatusOK, r.Code, r.Body)
	assert.Equal(t, map[string]any{"message": "Updated"}, r.Body)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	for _, h := range []http.Handler{f.admin, f.api} {
		r := call(t, h, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, r.Code)
	}
}

type orderProbe struct {
	name  string
	prio  int
	trail *[]string
}

func (p orderProbe) Priority() int               { return p.prio }
func (p orderProbe) MountAdmin(*gin.RouterGroup) { *p.trail = append(*p.trail, p.name) }

type plainProbe struct{ trail *[]string }

func (p plainProbe) MountAPI(*gin.RouterGroup)   { *p.trail = append(*p.trail, "api") }
func (p plainProbe) MountAdmin(*gin.RouterGroup) { *p.trail = append(*p.trail, "default") }

func TestRegistryMountsByPriority(t *testing.T) {
	var trail []string
	reg := (&Registry{}).Register(
		plainProbe{&trail},
		orderProbe{"late", 200, &trail},
		orderProbe{"early", 1, &trail},
	)
	g := gin.New().Group("")
	reg.MountAdmin(g)
	reg.MountAPI(g)
	assert.Equal(t, []string{"early", "default", "late", "api"}, trail)
}
