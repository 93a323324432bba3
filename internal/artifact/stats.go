package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/models"
)

// StatsStore persists the user stats artifact with a load-modify-save
// discipline. Writes are serialized through the store's mutex; the store is
// the single owner of the file within a process, so last-writer-wins across
// processes is an accepted trade-off.
type StatsStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewStatsStore creates a store backed by the given file path.
func NewStatsStore(path string) *StatsStore {
	return &StatsStore{
		path: path,
		log:  logger.Default().WithPrefix("stats_store"),
	}
}

// Load reads the stats artifact. A missing file is an empty record. A corrupt
// file is also treated as an empty record, with a warning, so a user can keep
// practicing at the cost of losing the corrupted history.
func (s *StatsStore) Load() models.StatsRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *StatsStore) load() models.StatsRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read stats file %s: %v", s.path, err)
		}
		return models.StatsRecord{}
	}

	var rec models.StatsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Warn("stats file %s is corrupt, starting with empty record: %v", s.path, err)
		return models.StatsRecord{}
	}
	if rec == nil {
		rec = models.StatsRecord{}
	}
	return rec
}

func (s *StatsStore) save(rec models.StatsRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write stats file %s: %w", s.path, err)
	}
	return nil
}

// Update applies fn to the current record and writes the result back, all
// under the store lock.
func (s *StatsStore) Update(fn func(models.StatsRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load()
	fn(rec)
	return s.save(rec)
}
