// Package redisrepo stores carts in Redis so several storefront replicas can share them.
//
// Layout, under a configurable prefix:
//
//	item:{id}              hash  product_id, session_id, quantity
//	session:{sid}:index    hash  product_id -> item id
//	session:{sid}:items    zset  item ids scored by insertion sequence
//	session:{sid}:seq      counter feeding the zset scores
//
// Mutations run as Lua scripts so merge-on-add is atomic across replicas.
package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dwikikusuma/techhub-store/internal/cart/domain"
)

var addScript = redis.NewScript(`
if tonumber(ARGV[3]) > tonumber(ARGV[6]) then
  return {'', -1}
end
local id = redis.call('HGET', KEYS[1], ARGV[1])
if id then
  local cur = tonumber(redis.call('HGET', ARGV[5] .. id, 'quantity') or '0')
  if cur + tonumber(ARGV[3]) > tonumber(ARGV[6]) then
    return {id, -1}
  end
  local qty = redis.call('HINCRBY', ARGV[5] .. id, 'quantity', ARGV[3])
  return {id, qty}
end
id = ARGV[2]
redis.call('HSET', KEYS[1], ARGV[1], id)
redis.call('HSET', ARGV[5] .. id, 'product_id', ARGV[1], 'session_id', ARGV[4], 'quantity', ARGV[3])
local seq = redis.call('INCR', KEYS[3])
redis.call('ZADD', KEYS[2], seq, id)
return {id, tonumber(ARGV[3])}
`)

var setScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return false
end
redis.call('HSET', KEYS[1], 'quantity', ARGV[1])
return redis.call('HMGET', KEYS[1], 'product_id', 'session_id', 'quantity')
`)

var removeScript = redis.NewScript(`
local f = redis.call('HMGET', KEYS[1], 'product_id', 'session_id')
if not f[1] then
  return 0
end
local base = ARGV[1] .. f[2]
redis.call('HDEL', base .. ':index', f[1])
redis.call('ZREM', base .. ':items', ARGV[2])
redis.call('DEL', KEYS[1])
return 1
`)

var clearScript = redis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[2], 0, -1)
for _, id in ipairs(ids) do
  redis.call('DEL', ARGV[1] .. id)
end
redis.call('DEL', KEYS[1], KEYS[2], KEYS[3])
return #ids
`)

type Options struct {
	Prefix string
	// TTL expires an idle cart. It is refreshed on every mutation; zero disables expiry.
	TTL time.Duration
}

type CartRepo struct {
	client redis.UniversalClient
	opts   Options
	newID  func() string
}

func NewCartRepo(client redis.UniversalClient, opts Options) *CartRepo {
	return &CartRepo{client: client, opts: opts, newID: uuid.NewString}
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (r *CartRepo) itemPrefix() string { return r.opts.Prefix + "item:" }

func (r *CartRepo) sessionPrefix() string { return r.opts.Prefix + "session:" }

func (r *CartRepo) itemKey(id string) string { return r.itemPrefix() + id }

func (r *CartRepo) sessionKeys(sessionID string) (index, items, seq string) {
	base := r.sessionPrefix() + sessionID
	return base + ":index", base + ":items", base + ":seq"
}

func (r *CartRepo) AddItem(ctx context.Context, sessionID, productID string, quantity int) (domain.CartItem, error) {
	index, items, seq := r.sessionKeys(sessionID)

	res, err := addScript.Run(ctx, r.client,
		[]string{index, items, seq},
		productID, r.newID(), quantity, sessionID, r.itemPrefix(), domain.MaxQuantity,
	).Slice()
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("cart add: %w", err)
	}
	if len(res) != 2 {
		return domain.CartItem{}, fmt.Errorf("cart add: unexpected reply %v", res)
	}

	id, _ := res[0].(string)
	qty, _ := res[1].(int64)
	if qty < 0 {
		return domain.CartItem{}, domain.ErrQuantityLimit
	}
	if err := r.touch(ctx, sessionID); err != nil {
		return domain.CartItem{}, err
	}
	return domain.CartItem{ID: id, SessionID: sessionID, ProductID: productID, Quantity: int(qty)}, nil
}

func (r *CartRepo) GetItem(ctx context.Context, itemID string) (domain.CartItem, bool, error) {
	vals, err := r.client.HMGet(ctx, r.itemKey(itemID), "product_id", "session_id", "quantity").Result()
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("cart get: %w", err)
	}
	return decodeItem(itemID, vals)
}

func (r *CartRepo) SetQuantity(ctx context.Context, itemID string, quantity int) (domain.CartItem, bool, error) {
	vals, err := setScript.Run(ctx, r.client, []string{r.itemKey(itemID)}, quantity).Slice()
	if errors.Is(err, redis.Nil) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("cart set quantity: %w", err)
	}

	item, ok, err := decodeItem(itemID, vals)
	if err != nil || !ok {
		return item, ok, err
	}
	return item, true, r.touch(ctx, item.SessionID)
}

func (r *CartRepo) RemoveItem(ctx context.Context, itemID string) (bool, error) {
	n, err := removeScript.Run(ctx, r.client, []string{r.itemKey(itemID)}, r.sessionPrefix(), itemID).Int()
	if err != nil {
		return false, fmt.Errorf("cart remove: %w", err)
	}
	return n == 1, nil
}

func (r *CartRepo) ClearSession(ctx context.Context, sessionID string) error {
	index, items, seq := r.sessionKeys(sessionID)
	if err := clearScript.Run(ctx, r.client, []string{index, items, seq}, r.itemPrefix()).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

func (r *CartRepo) ListItems(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	_, items, _ := r.sessionKeys(sessionID)

	ids, err := r.client.ZRange(ctx, items, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cart list: %w", err)
	}
	if len(ids) == 0 {
		return []domain.CartItem{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.SliceCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HMGet(ctx, r.itemKey(id), "product_id", "session_id", "quantity")
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("cart list: %w", err)
	}

	out := make([]domain.CartItem, 0, len(ids))
	for i, cmd := range cmds {
		item, ok, err := decodeItem(ids[i], cmd.Val())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// touch pushes the session's expiry out by the configured TTL.
func (r *CartRepo) touch(ctx context.Context, sessionID string) error {
	if r.opts.TTL <= 0 {
		return nil
	}
	index, items, seq := r.sessionKeys(sessionID)

	ids, err := r.client.ZRange(ctx, items, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("cart touch: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, key := range []string{index, items, seq} {
		pipe.Expire(ctx, key, r.opts.TTL)
	}
	for _, id := range ids {
		pipe.Expire(ctx, r.itemKey(id), r.opts.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cart touch: %w", err)
	}
	return nil
}

func decodeItem(id string, vals []interface{}) (domain.CartItem, bool, error) {
	if len(vals) != 3 || vals[0] == nil {
		return domain.CartItem{}, false, nil
	}
	productID, _ := vals[0].(string)
	sessionID, _ := vals[1].(string)
	rawQty, _ := vals[2].(string)

	qty, err := strconv.Atoi(rawQty)
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("cart item %s: bad quantity %q", id, rawQty)
	}
	return domain.CartItem{ID: id, SessionID: sessionID, ProductID: productID, Quantity: qty}, true, nil
}
