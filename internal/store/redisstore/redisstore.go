// Package redisstore stores records in Redis: ids come from an atomically
// incremented counter, each record is a hash, and a manually maintained list
// indexes the live ids.
//
// Filtering happens client-side with strings.Contains and is therefore
// case-sensitive, unlike the LIKE-based SQL backends.
package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"comprobantes/internal/core"
)

const (
	counterKey = "transferencias:next_id"
	indexKey   = "transferencias:ids"
)

type Store struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func recordKey(id int64) string {
	return "transferencia:" + strconv.FormatInt(id, 10)
}

func (s *Store) Create(ctx context.Context, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	id, err := s.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}

	createdAt := time.Now().UTC()
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, recordKey(id), map[string]any{
		"nombre":      rec.Name,
		"fecha":       rec.Date,
		"monto":       rec.Amount,
		"descripcion": rec.Description,
		"imagen":      rec.ImageRef,
		"created_at":  createdAt.Format(time.RFC3339),
	})
	pipe.RPush(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("store record %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Record saved to Redis", "id", id, "nombre", rec.Name, "fecha", rec.Date)
	return id, nil
}

func (s *Store) List(ctx context.Context, f core.Filter) ([]core.Record, error) {
	f = f.Normalize()

	ids, err := s.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var out []core.Record
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		fields, err := s.client.HGetAll(ctx, recordKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", id, err)
		}
		if len(fields) == 0 {
			// Index entry without a hash: hash expired or was removed
			// out of band. Skip rather than fail the whole listing.
			continue
		}
		rec := core.Record{
			ID:          id,
			Name:        fields["nombre"],
			Date:        fields["fecha"],
			Amount:      fields["monto"],
			Description: fields["descripcion"],
			ImageRef:    fields["imagen"],
		}
		if ts, err := time.Parse(time.RFC3339, fields["created_at"]); err == nil {
			rec.CreatedAt = ts
		}
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}

	// Date is free-form text in every backend, so a lexicographic sort
	// matches the SQL ORDER BY fecha DESC.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.client.Del(ctx, recordKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("delete record %d: %w", id, err)
	}
	if _, err := s.client.LRem(ctx, indexKey, 0, id).Result(); err != nil {
		return false, fmt.Errorf("unindex record %d: %w", id, err)
	}
	return removed > 0, nil
}
