package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient ホットなジオメトリレスポンスをキャッシュするRedisクライアントのラッパー
type RedisClient struct {
	Client *redis.Client
}

// NewRedisClientFromEnv 環境変数からRedisクライアントを作成
// REDIS_HOSTが未設定の場合はnilを返し、キャッシュなしで動作する
func NewRedisClientFromEnv() *RedisClient {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil
	}

	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		// パース失敗時は黙って0にフォールバック
		if n, _ := strconv.Atoi(v); n >= 0 {
			db = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	})

	return &RedisClient{Client: client}
}

// Set キーに値をTTL付きで保存
func (rc *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := rc.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("Redisへの保存失敗 (key=%s): %w", key, err)
	}
	return nil
}

// Get キーの値を取得（キャッシュミスの場合は nil, false を返す）
func (rc *RedisClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := rc.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Redisからの取得失敗 (key=%s): %w", key, err)
	}
	return data, true, nil
}

// HealthCheck Redis接続のヘルスチェック
func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	if rc == nil || rc.Client == nil {
		return fmt.Errorf("Redisクライアントが初期化されていません")
	}
	return rc.Client.Ping(ctx).Err()
}

// Close Redis接続を閉じる
func (rc *RedisClient) Close() error {
	if rc == nil || rc.Client == nil {
		return nil
	}
	return rc.Client.Close()
}
