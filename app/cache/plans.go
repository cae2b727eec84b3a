package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const (
	plansKey        = "memberships:catalog:plans"
	defaultCacheTTL = 5 * time.Minute
)

// PlanCache keeps the active plan listing in redis. Entries expire after the
// configured TTL and are dropped whenever a plan is created.
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPlanCache(client *redis.Client, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &PlanCache{client: client, ttl: ttl}
}

// Dial connects to redis and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func (c *PlanCache) GetPlans(ctx context.Context) ([]*entity.Plan, bool, error) {
	data, err := c.client.Get(ctx, plansKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cached plans: %w", err)
	}

	plans, err := decodePlans(data)
	if err != nil {
		return nil, false, err
	}
	return plans, true, nil
}

func (c *PlanCache) SetPlans(ctx context.Context, plans []*entity.Plan) error {
	data, err := encodePlans(plans)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, plansKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache plans: %w", err)
	}
	return nil
}

func (c *PlanCache) InvalidatePlans(ctx context.Context) error {
	if err := c.client.Del(ctx, plansKey).Err(); err != nil {
		return fmt.Errorf("invalidate plans: %w", err)
	}
	return nil
}

func encodePlans(plans []*entity.Plan) ([]byte, error) {
	if plans == nil {
		plans = []*entity.Plan{}
	}
	data, err := json.Marshal(plans)
	if err != nil {
		return nil, fmt.Errorf("marshal plans: %w", err)
	}
	return data, nil
}

func decodePlans(data []byte) ([]*entity.Plan, error) {
	var plans []*entity.Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, fmt.Errorf("unmarshal cached plans: %w", err)
	}
	return plans, nil
}
