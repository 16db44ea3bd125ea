package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{"native dsn untouched", "root:pw@tcp(db:3306)/shop?parseTime=true", "", "", "root:pw@tcp(db:3306)/shop?parseTime=true"},
		{"jdbc url", "jdbc:mysql://db:3306/shop?useSSL=false&serverTimezone=UTC", "root", "pw",
			"root:pw@tcp(db:3306)/shop?charset=utf8mb4&loc=UTC&parseTime=true&tls=false"},
		{"credentials in query", "mysql://db:3306/shop?user=app&password=s3cret", "", "",
			"app:s3cret@tcp(db:3306)/shop?charset=utf8mb4&parseTime=true"},
		{"empty", "  ", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db:3306)/shop", maskDSN("root:pw@tcp(db:3306)/shop"))
	assert.Equal(t, "file:shop.db", maskDSN("file:shop.db"))
}

func TestNewGormUnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

type uniqueThing struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex;size:32"`
}

func TestIsDuplicateKey(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&uniqueThing{}))

	require.NoError(t, db.Create(&uniqueThing{Code: "a"}).Error)
	err = db.Create(&uniqueThing{Code: "a"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKey(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)))
}
