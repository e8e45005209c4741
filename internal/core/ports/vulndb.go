package ports

import (
	"context"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// VulnRepository is the knowledge base of known smart-contract weaknesses.
type VulnRepository interface {
	UpsertPattern(ctx context.Context, p domain.VulnPattern) error
	GetPattern(ctx context.Context, id int64) (*domain.VulnPattern, error)
	ListPatterns(ctx context.Context, category string) ([]domain.VulnPattern, error)
	SearchPatterns(ctx context.Context, keywords []string) ([]domain.VulnPattern, error)
	ListCategories(ctx context.Context) ([]string, error)
	TotalCount(ctx context.Context) (int, error)
	UpdateSyncStatus(ctx context.Context, status domain.VulnSyncStatus) error
	Close() error
}

// VulnMatcher checks contract source against the knowledge base.
type VulnMatcher interface {
	Check(ctx context.Context, source string) ([]domain.VulnMatch, error)
}
