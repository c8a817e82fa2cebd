// Package cart keeps per-session cart and wishlist state in Redis. Sessions
// are anonymous browser ids; entries expire after a day of inactivity.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

const ttl = 24 * time.Hour

type Cart struct {
	SessionID string                `json:"session_id"`
	Items     []domain.CheckoutItem `json:"items"`
	Amount    float64               `json:"amount"`
}

type Wishlist struct {
	SessionID  string  `json:"session_id"`
	ProductIDs []int64 `json:"product_ids"`
}

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func cartKey(session string) string     { return "cart:" + session }
func wishlistKey(session string) string { return "wishlist:" + session }

func (s *Store) SaveCart(ctx context.Context, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.rdb.Set(ctx, cartKey(c.SessionID), data, ttl).Err()
}

// GetCart returns an empty cart for unknown sessions.
func (s *Store) GetCart(ctx context.Context, session string) (*Cart, error) {
	data, err := s.rdb.Get(ctx, cartKey(session)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Cart{SessionID: session, Items: []domain.CheckoutItem{}}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &c, nil
}

func (s *Store) ClearCart(ctx context.Context, session string) error {
	return s.rdb.Del(ctx, cartKey(session)).Err()
}

func (s *Store) SaveWishlist(ctx context.Context, w Wishlist) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}
	return s.rdb.Set(ctx, wishlistKey(w.SessionID), data, ttl).Err()
}

func (s *Store) GetWishlist(ctx context.Context, session string) (*Wishlist, error) {
	data, err := s.rdb.Get(ctx, wishlistKey(session)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Wishlist{SessionID: session, ProductIDs: []int64{}}, nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	var w Wishlist
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return &w, nil
}

func (s *Store) ClearWishlist(ctx context.Context, session string) error {
	return s.rdb.Del(ctx, wishlistKey(session)).Err()
}
