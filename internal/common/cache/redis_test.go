// Package cache Redis 缓存模块单元测试
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/santaluna/hotel-backend/internal/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniRedis 创建 miniredis 测试实例
func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// setupTestRedis 初始化测试 Redis 客户端
func setupTestRedis(t *testing.T, s *miniredis.Miniredis) {
	rdb = redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	t.Cleanup(func() {
		_ = rdb.Close()
		rdb = nil
	})
}

func TestInit_Success(t *testing.T) {
	s := setupMiniRedis(t)

	cfg := &config.RedisConfig{
		Host:         s.Host(),
		Port:         s.Server().Addr().Port,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}

	client, err := Init(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, client)
	t.Cleanup(func() {
		_ = Close()
	})
}

func TestInit_ConnectionFailed(t *testing.T) {
	cfg := &config.RedisConfig{
		Host:        "invalid-host",
		Port:        9999,
		DialTimeout: 1,
	}

	client, err := Init(cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect redis")
}

func TestSetGet(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	type bookingSummary struct {
		ConfirmationCode string `json:"confirmation_code"`
		Status           string `json:"status"`
	}

	err := Set(ctx, KeyPrefixBooking+"1", bookingSummary{
		ConfirmationCode: "SAN-ABCDEF",
		Status:           "confirmed",
	}, time.Minute)
	assert.NoError(t, err)

	var got bookingSummary
	err = Get(ctx, KeyPrefixBooking+"1", &got)
	assert.NoError(t, err)
	assert.Equal(t, "SAN-ABCDEF", got.ConfirmationCode)
	assert.Equal(t, "confirmed", got.Status)
}

func TestGet_KeyNotFound(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)

	var dest string
	err := Get(context.Background(), "missing", &dest)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestStringHelpers(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	err := SetString(ctx, KeyPrefixStaffSession+"7", "token", time.Minute)
	assert.NoError(t, err)

	v, err := GetString(ctx, KeyPrefixStaffSession+"7")
	assert.NoError(t, err)
	assert.Equal(t, "token", v)

	exists, err := Exists(ctx, KeyPrefixStaffSession+"7")
	assert.NoError(t, err)
	assert.True(t, exists)

	err = Delete(ctx, KeyPrefixStaffSession+"7")
	assert.NoError(t, err)

	exists, _ = Exists(ctx, KeyPrefixStaffSession+"7")
	assert.False(t, exists)
}

func TestIncr(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	n, err := Incr(ctx, KeyPrefixRateLimit+"1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = Incr(ctx, KeyPrefixRateLimit+"1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRoomLock(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	// 第一次获取成功
	ok, err := AcquireRoomLock(ctx, 101, 10*time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)

	// 锁被占用时获取失败
	ok, err = AcquireRoomLock(ctx, 101, 10*time.Second)
	assert.NoError(t, err)
	assert.False(t, ok)

	// 不同房间互不影响
	ok, err = AcquireRoomLock(ctx, 102, 10*time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)

	// 释放后可以再次获取
	err = ReleaseRoomLock(ctx, 101)
	assert.NoError(t, err)

	ok, err = AcquireRoomLock(ctx, 101, 10*time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRoomLock_Expires(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	ok, err := AcquireRoomLock(ctx, 201, time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)

	// miniredis 手动推进时间触发过期
	s.FastForward(2 * time.Second)

	ok, err = AcquireRoomLock(ctx, 201, time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildKey(t *testing.T) {
	key := BuildKey(KeyPrefixBooking, "42", "folio")
	assert.Equal(t, "booking:42:folio", key)
}
