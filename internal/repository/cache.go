package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheInvalidator реализуют репозитории, умеющие сбросить кэш RFQ.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, rfqId string)
}

// CachedRFQRepository кэширует чтение RFQ в Redis.
// Ошибки Redis не прерывают запрос: чтение идёт напрямую в бэкенд.
type CachedRFQRepository struct {
	next   RFQRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRFQRepository создаёт новый экземпляр CachedRFQRepository.
func NewCachedRFQRepository(next RFQRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRFQRepository {
	return &CachedRFQRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func detailKey(rfqId string) string     { return "rfq:" + rfqId + ":detail" }
func comparisonKey(rfqId string) string { return "rfq:" + rfqId + ":comparison" }
func itemsKey(rfqId string) string      { return "rfq:" + rfqId + ":items" }

// GetRFQ возвращает RFQ из кэша или бэкенда.
func (r *CachedRFQRepository) GetRFQ(ctx context.Context, rfqId string) (*models.RFQEvent, error) {
	var rfq models.RFQEvent
	if r.load(ctx, detailKey(rfqId), &rfq) {
		return &rfq, nil
	}
	fresh, err := r.next.GetRFQ(ctx, rfqId)
	if err != nil {
		return nil, err
	}
	r.store(ctx, detailKey(rfqId), fresh)
	return fresh, nil
}

// GetComparison возвращает данные сравнения из кэша или бэкенда.
func (r *CachedRFQRepository) GetComparison(ctx context.Context, rfqId string) (*models.ComparisonData, error) {
	var comparison models.ComparisonData
	if r.load(ctx, comparisonKey(rfqId), &comparison) {
		return &comparison, nil
	}
	fresh, err := r.next.GetComparison(ctx, rfqId)
	if err != nil {
		return nil, err
	}
	r.store(ctx, comparisonKey(rfqId), fresh)
	return fresh, nil
}

// GetItemBuckets возвращает позиции по вкладкам из кэша или бэкенда.
func (r *CachedRFQRepository) GetItemBuckets(ctx context.Context, rfqId string) (*models.ItemBuckets, error) {
	var buckets models.ItemBuckets
	if r.load(ctx, itemsKey(rfqId), &buckets) {
		return &buckets, nil
	}
	fresh, err := r.next.GetItemBuckets(ctx, rfqId)
	if err != nil {
		return nil, err
	}
	r.store(ctx, itemsKey(rfqId), fresh)
	return fresh, nil
}

// SubmitCollectiveCounterOffer отправляет пакет и сбрасывает кэш RFQ.
func (r *CachedRFQRepository) SubmitCollectiveCounterOffer(ctx context.Context, req models.CounterOfferRequest) error {
	if err := r.next.SubmitCollectiveCounterOffer(ctx, req); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, vo := range req.VendorOffers {
		if !seen[vo.RFQEventID] {
			seen[vo.RFQEventID] = true
			r.Invalidate(ctx, vo.RFQEventID)
		}
	}
	return nil
}

// SubmitCollectiveArcApproval отправляет пакет и сбрасывает кэш RFQ.
func (r *CachedRFQRepository) SubmitCollectiveArcApproval(ctx context.Context, req models.ArcApprovalRequest) error {
	if err := r.next.SubmitCollectiveArcApproval(ctx, req); err != nil {
		return err
	}
	r.Invalidate(ctx, req.RFQEventID)
	return nil
}

// Invalidate удаляет закэшированные данные RFQ.
func (r *CachedRFQRepository) Invalidate(ctx context.Context, rfqId string) {
	if err := r.rdb.Del(ctx, detailKey(rfqId), comparisonKey(rfqId), itemsKey(rfqId)).Err(); err != nil {
		r.logger.Warn("failed to invalidate rfq cache", zap.String("rfqId", rfqId), zap.Error(err))
	}
}

func (r *CachedRFQRepository) load(ctx context.Context, key string, out interface{}) bool {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("rfq cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		r.logger.Warn("rfq cache entry is corrupted", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *CachedRFQRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("rfq cache write failed", zap.String("key", key), zap.Error(err))
	}
}
