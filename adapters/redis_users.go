package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/service"
)

const userKeyPrefix = "user"

// NewRedisUniversalClient creates and configures an instance of the redis
// universal client from a redis:// URL.
func NewRedisUniversalClient(redisAddr string, options ...RedisConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	return redis.NewUniversalClient(universalOptions(redisOptions)), nil
}

// RedisConfigOption configures the client.
type RedisConfigOption func(*redis.Options)

func universalOptions(options *redis.Options) *redis.UniversalOptions {
	return &redis.UniversalOptions{
		Addrs:              []string{options.Addr},
		DB:                 options.DB,
		Username:           options.Username,
		Password:           options.Password,
		WriteTimeout:       options.WriteTimeout,
		ReadTimeout:        options.ReadTimeout,
		DialTimeout:        options.DialTimeout,
		MaxRetries:         options.MaxRetries,
		PoolSize:           options.PoolSize,
		PoolTimeout:        options.PoolTimeout,
		MinIdleConns:       options.MinIdleConns,
		IdleTimeout:        options.IdleTimeout,
		IdleCheckFrequency: options.IdleCheckFrequency,
	}
}

// RedisUserStore persists user records in Redis (key: user:{userId},
// value: JSON record). Chosen over the in-memory store when the process is
// configured with a Redis address, so records survive restarts.
type RedisUserStore struct {
	client redis.UniversalClient
}

var _ interfaces.UserStore = (*RedisUserStore)(nil)

// NewRedisUserStore creates a UserStore backed by the given client.
func NewRedisUserStore(client redis.UniversalClient) *RedisUserStore {
	return &RedisUserStore{client: client}
}

func userKey(userID string) string {
	return userKeyPrefix + ":" + userID
}

func (s *RedisUserStore) Create(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return service.NewInternalServerError("cannot encode user record", err)
	}

	set, err := s.client.SetNX(ctx, userKey(user.UserID), data, 0).Result()
	if err != nil {
		return service.NewInternalServerError("cannot store user record", err)
	}
	if !set {
		return service.NewConflictError("user already exists", nil)
	}
	return nil
}

func (s *RedisUserStore) Get(ctx context.Context, userID string) (domain.User, error) {
	data, err := s.client.Get(ctx, userKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.User{}, service.NewEntityNotFoundError("user does not exist", err)
		}
		return domain.User{}, service.NewInternalServerError("cannot load user record", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, service.NewInternalServerError("cannot decode user record", err)
	}
	return user, nil
}

func (s *RedisUserStore) Update(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return service.NewInternalServerError("cannot encode user record", err)
	}

	set, err := s.client.SetXX(ctx, userKey(user.UserID), data, 0).Result()
	if err != nil {
		return service.NewInternalServerError("cannot store user record", err)
	}
	if !set {
		return service.NewEntityNotFoundError("user does not exist", nil)
	}
	return nil
}

func (s *RedisUserStore) Delete(ctx context.Context, userID string) error {
	removed, err := s.client.Del(ctx, userKey(userID)).Result()
	if err != nil {
		return service.NewInternalServerError("cannot delete user record", err)
	}
	if removed == 0 {
		return service.NewEntityNotFoundError("user does not exist", nil)
	}
	return nil
}

func (s *RedisUserStore) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	iter := s.client.Scan(ctx, 0, userKeyPrefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, service.NewInternalServerError("cannot load user record", err)
		}
		var user domain.User
		if err := json.Unmarshal(data, &user); err != nil {
			return nil, service.NewInternalServerError("cannot decode user record", err)
		}
		users = append(users, user)
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("cannot scan user records", err)
	}
	return users, nil
}
