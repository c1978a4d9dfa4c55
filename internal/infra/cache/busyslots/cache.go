package busyslots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

var ErrCache = errors.New("busyslots.cache: redis error")

// entry формат хранения слота в Redis
type entry struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Cache кэш занятых слотов площадки.
// Для каждой площадки хранится hash busy_slots:{turfID}, поле - дата начала выборки.
// Любое изменение броней площадки удаляет весь hash и увеличивает счетчик поколения
// busy_slots_gen:{turfID}. Set записывает выборку, только если поколение не изменилось
// с момента чтения из БД.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrCache, err)
	}
	return nil
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(turfID int64) string {
	return fmt.Sprintf("busy_slots:%d", turfID)
}

func generationKey(turfID int64) string {
	return fmt.Sprintf("busy_slots_gen:%d", turfID)
}

// errStale выборка устарела, запись пропускается
var errStale = errors.New("stale generation")

// Version возвращает текущее поколение площадки (0, если изменений еще не было)
func (c *Cache) Version(ctx context.Context, turfID int64) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(turfID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: get generation: %v", ErrCache, err)
	}
	return gen, nil
}

// Get возвращает слоты из кэша. found = false, если записи нет.
func (c *Cache) Get(ctx context.Context, turfID int64, fromDate time.Time) ([]domain.BusySlot, bool, error) {
	val, err := c.client.HGet(ctx, key(turfID), fromDate.Format(domain.DateFormat)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: hget: %v", ErrCache, err)
	}

	var entries []entry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		return nil, false, fmt.Errorf("%w: unmarshal: %v", ErrCache, err)
	}

	slots := make([]domain.BusySlot, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse(domain.DateFormat, e.Date)
		if err != nil {
			return nil, false, fmt.Errorf("%w: parse date: %v", ErrCache, err)
		}
		slots = append(slots, domain.BusySlot{
			Date:      date,
			StartTime: types.TimeString(e.Start),
			EndTime:   types.TimeString(e.End),
		})
	}

	return slots, true, nil
}

// Set сохраняет слоты и продлевает TTL hash.
// version - поколение, прочитанное через Version до запроса в БД.
// Если с тех пор площадка была инвалидирована, запись молча пропускается.
func (c *Cache) Set(ctx context.Context, turfID int64, fromDate time.Time, version int64, slots []domain.BusySlot) error {
	entries := make([]entry, 0, len(slots))
	for _, s := range slots {
		entries = append(entries, entry{
			Date:  s.Date.Format(domain.DateFormat),
			Start: s.StartTime.String(),
			End:   s.EndTime.String(),
		})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrCache, err)
	}

	k, genKey := key(turfID), generationKey(turfID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, fromDate.Format(domain.DateFormat), data)
			pipe.Expire(ctx, k, c.ttl)
			return nil
		})
		return err
	}, genKey)

	// Поколение сменилось между WATCH и EXEC
	if errors.Is(err, errStale) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: hset: %v", ErrCache, err)
	}

	return nil
}

// Invalidate удаляет все закэшированные выборки площадки и сдвигает поколение
func (c *Cache) Invalidate(ctx context.Context, turfID int64) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key(turfID))
	pipe.Incr(ctx, generationKey(turfID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrCache, err)
	}
	return nil
}

// NopCache используется, когда Redis выключен
type NopCache struct{}

func (NopCache) Get(context.Context, int64, time.Time) ([]domain.BusySlot, bool, error) {
	return nil, false, nil
}

func (NopCache) Version(context.Context, int64) (int64, error) {
	return 0, nil
}

func (NopCache) Set(context.Context, int64, time.Time, int64, []domain.BusySlot) error {
	return nil
}

func (NopCache) Invalidate(context.Context, int64) error {
	return nil
}
