// Package store persists named sync anchors: reference timecodes that
// anchored conversions are computed against. Anchors live in Redis so
// every instance of the service resolves the same sync points.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/framegate/framegate/internal/config"
	"github.com/framegate/framegate/internal/metrics"
	"github.com/framegate/framegate/pkg/timecode"
)

// ErrAnchorNotFound reports a lookup for an anchor that does not exist.
var ErrAnchorNotFound = errors.New("anchor not found")

// Anchor is a named reference timecode at a specific rate.
type Anchor struct {
	Name      string    `json:"name"`
	Timecode  string    `json:"timecode"`
	Rate      string    `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnchorStore reads and writes anchors in Redis.
type AnchorStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *logrus.Entry
}

// NewAnchorStore creates an anchor store backed by the given client.
func NewAnchorStore(client *redis.Client, cfg *config.AnchorsConfig, log *logrus.Logger) *AnchorStore {
	return &AnchorStore{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
		logger: log.WithField("component", "anchor_store"),
	}
}

// Set stores an anchor after validating that its timecode parses at its
// rate. An existing anchor with the same name is overwritten.
func (s *AnchorStore) Set(ctx context.Context, anchor Anchor) (err error) {
	defer func() { metrics.RecordAnchorOp("set", err) }()

	if anchor.Name == "" {
		return fmt.Errorf("anchor name is required")
	}
	if _, err = timecode.Parse(anchor.Timecode, anchor.Rate); err != nil {
		return fmt.Errorf("anchor %q: %w", anchor.Name, err)
	}

	anchor.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(anchor)
	if err != nil {
		return fmt.Errorf("marshal anchor %q: %w", anchor.Name, err)
	}

	if err = s.client.Set(ctx, s.key(anchor.Name), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store anchor %q: %w", anchor.Name, err)
	}

	s.logger.WithFields(logrus.Fields{
		"anchor": anchor.Name,
		"rate":   anchor.Rate,
	}).Debug("Anchor stored")
	return nil
}

// Get fetches an anchor by name.
func (s *AnchorStore) Get(ctx context.Context, name string) (Anchor, error) {
	var anchor Anchor

	payload, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordAnchorOp("get", ErrAnchorNotFound)
		return Anchor{}, fmt.Errorf("anchor %q: %w", name, ErrAnchorNotFound)
	}
	if err != nil {
		metrics.RecordAnchorOp("get", err)
		return Anchor{}, fmt.Errorf("fetch anchor %q: %w", name, err)
	}

	if err := json.Unmarshal(payload, &anchor); err != nil {
		metrics.RecordAnchorOp("get", err)
		return Anchor{}, fmt.Errorf("decode anchor %q: %w", name, err)
	}

	metrics.RecordAnchorOp("get", nil)
	return anchor, nil
}

// Resolve fetches an anchor and parses it into a Timecode.
func (s *AnchorStore) Resolve(ctx context.Context, name string) (timecode.Timecode, error) {
	anchor, err := s.Get(ctx, name)
	if err != nil {
		return timecode.Timecode{}, err
	}
	return timecode.Parse(anchor.Timecode, anchor.Rate)
}

// Delete removes an anchor. Deleting a missing anchor fails with
// ErrAnchorNotFound.
func (s *AnchorStore) Delete(ctx context.Context, name string) (err error) {
	defer func() { metrics.RecordAnchorOp("delete", err) }()

	removed, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("delete anchor %q: %w", name, err)
	}
	if removed == 0 {
		return fmt.Errorf("anchor %q: %w", name, ErrAnchorNotFound)
	}
	return nil
}

// List returns all anchors, scanning by key prefix.
func (s *AnchorStore) List(ctx context.Context) ([]Anchor, error) {
	var (
		anchors []Anchor
		cursor  uint64
	)

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			metrics.RecordAnchorOp("list", err)
			return nil, fmt.Errorf("scan anchors: %w", err)
		}

		for _, key := range keys {
			payload, err := s.client.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue // expired between scan and get
			}
			if err != nil {
				metrics.RecordAnchorOp("list", err)
				return nil, fmt.Errorf("fetch anchor key %q: %w", key, err)
			}

			var anchor Anchor
			if err := json.Unmarshal(payload, &anchor); err != nil {
				s.logger.WithError(err).WithField("key", key).Warn("Skipping undecodable anchor")
				continue
			}
			anchors = append(anchors, anchor)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	metrics.RecordAnchorOp("list", nil)
	return anchors, nil
}

func (s *AnchorStore) key(name string) string {
	return s.prefix + name
}
