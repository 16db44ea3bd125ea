package ez

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront-api/internal/domain"
	resp "storefront-api/internal/transport/http/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidations()
}

type signupIn struct {
	FirstName            string `json:"first_name"            binding:"required,personname"`
	Email                string `json:"email"                 binding:"required,email"`
	Password             string `json:"password"              binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type searchIn struct {
	Search string `form:"search" binding:"omitempty,searchterm"`
	Slug   string `form:"slug"   binding:"omitempty,slug"`
}

type out struct {
	ID uint `json:"id"`
}

func engine() *gin.Engine {
	r := gin.New()
	e := New(r.Group(""))

	RegisterAction(e, Action[signupIn, out]{
		Method:  http.MethodPost,
		Path:    "/signup",
		Binder:  BindJSON,
		Status:  http.StatusCreated,
		Message: resp.MsgCreated,
		Key:     "user",
		Handler: func(*gin.Context, *signupIn) (out, error) { return out{ID: 7}, nil },
	})
	RegisterAction(e, Action[searchIn, []string]{
		Method: http.MethodGet,
		Path:   "/search",
		Binder: BindQuery,
		Key:    "results",
		Handler: func(_ *gin.Context, in *searchIn) ([]string, error) {
			return []string{in.Search}, nil
		},
	})
	RegisterAction(e, Action[struct{}, out]{
		Method: http.MethodDelete,
		Path:   "/things/:id",
		Binder: BindNone,
		Key:    "thing",
		Handler: func(c *gin.Context, _ *struct{}) (out, error) {
			id, err := ParamID(c, "id")
			if err != nil {
				return out{}, err
			}
			if id == 404 {
				return out{}, domain.NotFound("thing")
			}
			return out{ID: id}, nil
		},
	})
	RegisterAction(e, Action[struct{}, out]{
		Method: http.MethodGet,
		Path:   "/whoami",
		Binder: BindNone,
		Key:    "me",
		Handler: func(c *gin.Context, _ *struct{}) (out, error) {
			id, err := ActorID(c)
			return out{ID: id}, err
		},
	})
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterActionSuccess(t *testing.T) {
	w := do(engine(), http.MethodPost, "/signup",
		`{"first_name":"Zoë","email":"zoe@example.com","password":"hunter22","password_confirmation":"hunter22"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Created","user":{"id":7}}`, w.Body.String())
}

func TestRegisterActionValidationErrors(t *testing.T) {
	w := do(engine(), http.MethodPost, "/signup",
		`{"first_name":"R2D2","email":"nope","password":"short","password_confirmation":"other"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"message": "The request data is not valid",
		"error": "Bad request",
		"errors": [
			{"field":"first_name","message":"may only contain letters, spaces and ' -"},
			{"field":"email","message":"must be a valid email"},
			{"field":"password","message":"must be at least 8"},
			{"field":"password_confirmation","message":"does not match"}
		]
	}`, w.Body.String())
}

func TestRegisterActionMalformedJSON(t *testing.T) {
	w := do(engine(), http.MethodPost, "/signup", `{"first_name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"The request data is not valid","error":"Bad request"}`, w.Body.String())
}

func TestQueryValidators(t *testing.T) {
	r := engine()

	w := do(r, http.MethodGet, "/search?search=O'Brien", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Ok","results":["O'Brien"]}`, w.Body.String())

	w = do(r, http.MethodGet, "/search?search=drop%3Btable", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"search"`)

	w = do(r, http.MethodGet, "/search?slug=Red--Shoes", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"slug"`)
}

func TestParamIDAndDomainErrors(t *testing.T) {
	r := engine()

	w := do(r, http.MethodDelete, "/things/12", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Ok","thing":{"id":12}}`, w.Body.String())

	w = do(r, http.MethodDelete, "/things/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `{"field":"id","message":"must be a positive integer"}`)

	w = do(r, http.MethodDelete, "/things/0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/things/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"The thing was not found","error":"Not found"}`, w.Body.String())
}

func TestActorIDRequiresAuthenticatedUser(t *testing.T) {
	w := do(engine(), http.MethodGet, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized","error":"Unauthorized"}`, w.Body.String())
}
