package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

func TestEncodeDecodePlansKeepsOptionalPrice(t *testing.T) {
	annual := int64(99900)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := encodePlans([]*entity.Plan{
		{ID: 1, Name: "Connect Bronze", MonthlyPriceCents: 2990, DisplayOrder: 1, Active: true, CreatedAt: created},
		{ID: 3, Name: "Connect Ouro", MonthlyPriceCents: 9990, AnnualPriceCents: &annual, DisplayOrder: 3, Active: true, CreatedAt: created},
	})
	require.NoError(t, err)

	plans, err := decodePlans(data)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.Nil(t, plans[0].AnnualPriceCents)
	require.NotNil(t, plans[1].AnnualPriceCents)
	require.Equal(t, annual, *plans[1].AnnualPriceCents)
	require.True(t, plans[1].CreatedAt.Equal(created))
}

func TestEncodeNilPlansIsEmptyList(t *testing.T) {
	data, err := encodePlans(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decodePlans([]byte("{not json"))
	require.Error(t, err)
}

func TestGetPlansUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	c := NewPlanCache(client, 0)
	plans, ok, err := c.GetPlans(context.Background())
	require.Error(t, err)
	require.False(t, ok)
	require.Nil(t, plans)
}

func TestPlanCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client, err := Dial(ctx, addr, os.Getenv("REDIS_TEST_PASSWORD"), 15)
	require.NoError(t, err)
	defer client.Close()

	c := NewPlanCache(client, time.Minute)
	require.NoError(t, c.InvalidatePlans(ctx))

	_, ok, err := c.GetPlans(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.SetPlans(ctx, []*entity.Plan{{ID: 2, Name: "Connect Prata"}}))
	plans, ok, err := c.GetPlans(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Connect Prata", plans[0].Name)

	require.NoError(t, c.InvalidatePlans(ctx))
	_, ok, err = c.GetPlans(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
