package vulndb

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

// SeedLoader loads vulnerability patterns from JSON files into the database.
type SeedLoader struct {
	repo ports.VulnRepository
}

// NewSeedLoader creates a new seed loader.
func NewSeedLoader(repo ports.VulnRepository) *SeedLoader {
	return &SeedLoader{repo: repo}
}

// LoadFromFile loads patterns from a JSON file.
func (s *SeedLoader) LoadFromFile(ctx context.Context, filepath string) error {
	log.Printf("[VULN-SEED] Loading patterns from %s", filepath)

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var patterns []domain.VulnPattern
	if err := json.Unmarshal(data, &patterns); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	loaded := 0
	failed := 0

	for _, p := range patterns {
		if err := s.repo.UpsertPattern(ctx, p); err != nil {
			log.Printf("[VULN-SEED] Failed to load %q: %v", p.Name, err)
			failed++
		} else {
			loaded++
		}
	}

	log.Printf("[VULN-SEED] Loaded %d patterns (%d failed)", loaded, failed)

	status := domain.VulnSyncStatus{
		LastSyncTime: time.Now().UTC(),
		RecordCount:  loaded,
	}
	if failed > 0 {
		status.ErrorMessage = fmt.Sprintf("%d patterns failed to load", failed)
	}
	return s.repo.UpdateSyncStatus(ctx, status)
}
