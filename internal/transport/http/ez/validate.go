package ez

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"storefront-api/internal/repo"
)

var (
	personName = regexp.MustCompile(`^[\p{L} '\-]+$`)
	slug       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	once       sync.Once
)

// RegisterValidations 在 gin 的 validator 上注册自定义规则；字段名取 json/form tag
func RegisterValidations() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return personName.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slug.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("searchterm", func(fl validator.FieldLevel) bool {
			return repo.ValidSearchTerm(fl.Field().String())
		})
	})
}
