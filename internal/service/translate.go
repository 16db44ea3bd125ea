package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront-api/internal/core/database"
	"storefront-api/internal/domain"
)

// errNotUpdated 预检已确认存在但更新影响 0 行
var errNotUpdated = errors.New("row not updated")

// translator 服务层唯一的错误出口：领域错误原样返回，其余记录日志后转成安全的提示
type translator struct {
	log *zap.Logger
}

func (t translator) wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	var derr *domain.Error
	if errors.As(err, &derr) {
		t.log.Debug(derr.Message, zap.String("op", op), zap.String("kind", string(derr.Kind)))
		return derr
	}
	if errors.Is(err, database.ErrPoolExhausted) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		t.log.Warn("storage unavailable", zap.String("op", op), zap.Error(err))
		return domain.Unavailable("The service is busy, please try again later", err)
	}
	t.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return domain.Internal(fmt.Sprintf("Error while %s", op), err)
}

func mapRows[R any, T any](in []R, conv func(R) *T) []T {
	out := make([]T, 0, len(in))
	for _, r := range in {
		out = append(out, *conv(r))
	}
	return out
}

// flip 先按软删状态查找再翻转 deleted_at；影响行数必须为 1
func flip[T any](id uint, find func(uint) (*T, error), apply func(uint) (int64, error), resource, action string) error {
	current, err := find(id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.NotFound(resource)
	}
	n, err := apply(id)
	if err != nil {
		return err
	}
	if n != 1 {
		return domain.NotModified(resource, action)
	}
	return nil
}
