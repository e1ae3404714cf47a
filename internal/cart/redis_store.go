package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

const (
	cartKeyPrefix      = "cart:"
	guestCartKeyPrefix = "guest_cart:"

	// CartTTL est la durée de vie d'un panier serveur dans Redis (30 jours).
	CartTTL = 30 * 24 * time.Hour

	// GuestCartTTL est plus court : un invité qui ne revient pas sous une
	// semaine repart de zéro.
	GuestCartTTL = 7 * 24 * time.Hour
)

// RedisStore persiste chaque panier comme un blob JSON sous cart:<userID>.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, ownerID string) (*models.Cart, error) {
	data, err := s.rdb.Get(ctx, cartKeyPrefix+ownerID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, ownerID string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	// Pipeline : écriture + notification pub/sub pour un éventuel
	// consommateur temps réel.
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, cartKeyPrefix+ownerID, data, CartTTL)
	pipe.Publish(ctx, cartKeyPrefix+ownerID, "updated")
	_, err = pipe.Exec(ctx)
	return err
}

// RedisLocalStore persiste la liste d'articles d'un invité sous
// guest_cart:<guestID>, en bloc comme le localStorage qu'elle remplace.
type RedisLocalStore struct {
	rdb *redis.Client
}

func NewRedisLocalStore(rdb *redis.Client) *RedisLocalStore {
	return &RedisLocalStore{rdb: rdb}
}

func (s *RedisLocalStore) Get(ctx context.Context, guestID string) ([]models.LocalCartItem, error) {
	data, err := s.rdb.Get(ctx, guestCartKeyPrefix+guestID).Result()
	if errors.Is(err, redis.Nil) {
		return []models.LocalCartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.LocalCartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisLocalStore) Set(ctx context.Context, guestID string, items []models.LocalCartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, guestCartKeyPrefix+guestID, data, GuestCartTTL).Err()
}

func (s *RedisLocalStore) Clear(ctx context.Context, guestID string) error {
	return s.rdb.Del(ctx, guestCartKeyPrefix+guestID).Err()
}
