package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/dex-router/internal/domain"
)

const (
	EngineBucket = "engine"

	weightsKey = "scoring-weights"
	perfKey    = "perf-counters"

	DefaultDBPath = "./data/dex-router.db"
)

// StoredPerf is the persisted shape of the performance counters.
type StoredPerf struct {
	TotalRequests uint64  `json:"totalRequests"`
	TotalTimeouts uint64  `json:"totalTimeouts"`
	AvgLatencyMs  float64 `json:"avgLatencyMs"`
}

// Storage persists engine state (scoring weights, performance counters) so
// operator tuning survives restarts.
type Storage struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	os.MkdirAll(filepath.Dir(dbPath), 0755)

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, fmt.Errorf("failed to open database at %s", dbPath)
	}

	log.Info().Str("path", dbPath).Msg("[engineStorage] opened database")

	return &Storage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) SaveWeights(w domain.ScoringWeights) error {
	data, err := sonic.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	return s.db.Set(EngineBucket, []byte(weightsKey), data)
}

// LoadWeights returns the persisted weights, or ok=false when none were saved.
func (s *Storage) LoadWeights() (domain.ScoringWeights, bool, error) {
	var w domain.ScoringWeights
	data, err := s.db.List(EngineBucket)
	if err != nil {
		return w, false, fmt.Errorf("failed to list engine bucket: %w", err)
	}
	raw, ok := data[weightsKey]
	if !ok {
		return w, false, nil
	}
	if err := sonic.Unmarshal(raw, &w); err != nil {
		log.Error().Err(err).Msg("[engineStorage] failed to unmarshal weights, ignoring stored value")
		return w, false, nil
	}
	return w, true, nil
}

func (s *Storage) SavePerf(p StoredPerf) error {
	data, err := sonic.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal perf counters: %w", err)
	}
	return s.db.Set(EngineBucket, []byte(perfKey), data)
}

func (s *Storage) LoadPerf() (StoredPerf, bool, error) {
	var p StoredPerf
	data, err := s.db.List(EngineBucket)
	if err != nil {
		return p, false, fmt.Errorf("failed to list engine bucket: %w", err)
	}
	raw, ok := data[perfKey]
	if !ok {
		return p, false, nil
	}
	if err := sonic.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("[engineStorage] failed to unmarshal perf counters, ignoring stored value")
		return p, false, nil
	}
	return p, true, nil
}
