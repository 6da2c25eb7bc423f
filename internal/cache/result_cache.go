package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"mindtrack/internal/model"
)

// ResultCache keeps the latest prediction per patient for quick reads
type ResultCache interface {
	Set(ctx context.Context, patientNumber string, result *model.PredictionResult) error
	Get(ctx context.Context, patientNumber string) (*model.PredictionResult, error)
	Delete(ctx context.Context, patientNumber string) error
}

type resultCache struct {
	client *redis.Client
}

func NewResultCache(client *redis.Client) ResultCache {
	return &resultCache{
		client: client,
	}
}

func (c *resultCache) Set(ctx context.Context, patientNumber string, result *model.PredictionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "result:"+patientNumber, data, 10*time.Minute).Err()
}

func (c *resultCache) Get(ctx context.Context, patientNumber string) (*model.PredictionResult, error) {
	data, err := c.client.Get(ctx, "result:"+patientNumber).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.PredictionResult
	err = json.Unmarshal([]byte(data), &result)
	return &result, err
}

func (c *resultCache) Delete(ctx context.Context, patientNumber string) error {
	return c.client.Del(ctx, "result:"+patientNumber).Err()
}
