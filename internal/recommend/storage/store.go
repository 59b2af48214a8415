// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gamescout/internal/metrics"
	"github.com/tomtom215/gamescout/internal/recommend"
	"github.com/tomtom215/gamescout/internal/recommend/predictor"
)

var _ recommend.ModelStore = (*Store)(nil)

// Key prefixes for BadgerDB storage.
const (
	modelKeyPrefix  = "model:"
	metaKeyPrefix   = "model_meta:"
	latestKeyPrefix = "model_latest:"
)

var (
	// ErrModelNotFound is returned when no artifact exists for the key.
	ErrModelNotFound = errors.New("storage: model not found")

	// ErrChecksumMismatch is returned when a stored artifact fails
	// verification. Callers should treat it as a miss and retrain.
	ErrChecksumMismatch = errors.New("storage: artifact checksum mismatch")
)

// Config holds artifact store settings.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `json:"path" koanf:"path"`

	// InMemory runs Badger without disk persistence. Test use only.
	InMemory bool `json:"in_memory" koanf:"in_memory"`
}

// artifactMeta describes one stored model blob.
type artifactMeta struct {
	Checksum      string    `json:"checksum"`
	SizeBytes     int       `json:"size_bytes"`
	TrainedAt     time.Time `json:"trained_at"`
	ValidationMAE float64   `json:"validation_mae"`
	SampleCount   int       `json:"sample_count"`
	SavedAt       time.Time `json:"saved_at"`
}

// Store is a BadgerDB-backed model artifact store. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open creates or opens the store at the configured path.
//
//nolint:gocritic // hugeParam: config and logger passed by value for immutability
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}
	return NewWithDB(db, logger), nil
}

// NewWithDB wraps an existing Badger handle. The caller keeps ownership
// of the handle's lifecycle unless Close is used.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWithDB(db *badger.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "model_store").Logger(),
	}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunGC runs one round of Badger value-log garbage collection. A no-op
// round is not an error.
func (s *Store) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

func modelKey(userID int64, snapshot string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s", modelKeyPrefix, userID, snapshot))
}

func metaKey(userID int64, snapshot string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s", metaKeyPrefix, userID, snapshot))
}

func latestKey(userID int64) []byte {
	return []byte(fmt.Sprintf("%s%d", latestKeyPrefix, userID))
}

// SaveModel persists a trained model and marks it as the user's latest.
func (s *Store) SaveModel(ctx context.Context, userID int64, snapshot string, model *predictor.Model) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	blob, checksum, err := encodeModel(model)
	if err != nil {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("save", "error").Inc()
		return err
	}

	meta, err := json.Marshal(artifactMeta{
		Checksum:      checksum,
		SizeBytes:     len(blob),
		TrainedAt:     model.TrainedAt,
		ValidationMAE: model.ValidationMAE,
		SampleCount:   model.SampleCount,
		SavedAt:       time.Now(),
	})
	if err != nil {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("marshal artifact meta: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(modelKey(userID, snapshot), blob); err != nil {
			return fmt.Errorf("set model blob: %w", err)
		}
		if err := txn.Set(metaKey(userID, snapshot), meta); err != nil {
			return fmt.Errorf("set model meta: %w", err)
		}
		return txn.Set(latestKey(userID), []byte(snapshot))
	})
	if err != nil {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("save model: %w", err)
	}

	metrics.ArtifactStoreOpsTotal.WithLabelValues("save", "ok").Inc()
	s.logger.Debug().
		Int64("user_id", userID).
		Str("snapshot", snapshot).
		Int("size_bytes", len(blob)).
		Msg("model artifact saved")
	return nil
}

// LoadModel retrieves and verifies the model for a specific snapshot.
func (s *Store) LoadModel(ctx context.Context, userID int64, snapshot string) (*predictor.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blob []byte
	var meta artifactMeta

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(userID, snapshot))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrModelNotFound
		}
		if err != nil {
			return fmt.Errorf("get model meta: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return fmt.Errorf("unmarshal model meta: %w", err)
		}

		item, err = txn.Get(modelKey(userID, snapshot))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrModelNotFound
		}
		if err != nil {
			return fmt.Errorf("get model blob: %w", err)
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("load", "miss").Inc()
		return nil, err
	}

	if computeChecksum(blob) != meta.Checksum {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("load", "corrupt").Inc()
		s.logger.Warn().
			Int64("user_id", userID).
			Str("snapshot", snapshot).
			Msg("model artifact failed checksum verification")
		return nil, ErrChecksumMismatch
	}

	model, err := decodeModel(blob)
	if err != nil {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("load", "corrupt").Inc()
		return nil, err
	}

	metrics.ArtifactStoreOpsTotal.WithLabelValues("load", "ok").Inc()
	return model, nil
}

// LoadLatest retrieves the most recently saved model for a user, returning
// the model and its snapshot hash.
func (s *Store) LoadLatest(ctx context.Context, userID int64) (*predictor.Model, string, error) {
	var snapshot string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(latestKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrModelNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			snapshot = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, "", err
	}

	model, err := s.LoadModel(ctx, userID, snapshot)
	if err != nil {
		return nil, "", err
	}
	return model, snapshot, nil
}

// Prune deletes every artifact for the user except the given snapshot.
// Returns the number of artifacts removed.
func (s *Store) Prune(ctx context.Context, userID int64, keepSnapshot string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	keep := string(modelKey(userID, keepSnapshot))
	prefix := []byte(fmt.Sprintf("%s%d:", modelKeyPrefix, userID))

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if string(key) == keep {
				continue
			}
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("prune", "error").Inc()
		return 0, fmt.Errorf("scan artifacts: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
			snapshot := string(key[len(prefix):])
			if err := txn.Delete(metaKey(userID, snapshot)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.ArtifactStoreOpsTotal.WithLabelValues("prune", "error").Inc()
		return 0, fmt.Errorf("prune artifacts: %w", err)
	}

	metrics.ArtifactStoreOpsTotal.WithLabelValues("prune", "ok").Inc()
	if len(stale) > 0 {
		s.logger.Info().
			Int64("user_id", userID).
			Int("removed", len(stale)).
			Msg("stale model artifacts pruned")
	}
	return len(stale), nil
}

// encodeModel gob-encodes and gzips the model, returning the blob and its
// checksum.
func encodeModel(model *predictor.Model) ([]byte, string, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(model); err != nil {
		return nil, "", fmt.Errorf("encode model: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, "", fmt.Errorf("compress model: %w", err)
	}

	blob := buf.Bytes()
	return blob, computeChecksum(blob), nil
}

// decodeModel reverses encodeModel.
func decodeModel(blob []byte) (*predictor.Model, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer gz.Close()

	var model predictor.Model
	if err := gob.NewDecoder(gz).Decode(&model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &model, nil
}

func computeChecksum(blob []byte) string {
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}
