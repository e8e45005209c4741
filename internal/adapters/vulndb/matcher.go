package vulndb

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"github.com/lcalzada-xor/scaudit/internal/telemetry"
)

// PatternMatcher implements ports.VulnMatcher. It runs every detection
// pattern in the knowledge base against contract source. Pattern regexes are
// compiled lazily and cached so repeated checks don't recompile.
type PatternMatcher struct {
	repo  ports.VulnRepository
	cache map[string]*regexp.Regexp
}

// NewPatternMatcher creates a matcher over the given repository.
func NewPatternMatcher(repo ports.VulnRepository) *PatternMatcher {
	return &PatternMatcher{
		repo:  repo,
		cache: make(map[string]*regexp.Regexp),
	}
}

// Check runs all detection patterns against the source and returns matches
// ranked by CVSS score. Patterns without a detection regex are skipped; a
// pattern whose regex fails to compile is skipped too rather than aborting
// the whole scan.
func (m *PatternMatcher) Check(ctx context.Context, source string) ([]domain.VulnMatch, error) {
	patterns, err := m.repo.ListPatterns(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}

	var matches []domain.VulnMatch
	for _, p := range patterns {
		if p.Pattern == "" {
			continue
		}

		re, ok := m.cache[p.Pattern]
		if !ok {
			re, err = regexp.Compile(p.Pattern)
			if err != nil {
				continue
			}
			m.cache[p.Pattern] = re
		}

		hits := re.FindAllStringIndex(source, 10)
		if len(hits) == 0 {
			continue
		}

		evidence := make([]string, 0, len(hits))
		for _, h := range hits {
			evidence = append(evidence, snippet(source, h[0], h[1]))
		}

		matches = append(matches, domain.VulnMatch{
			Pattern:  p,
			Evidence: evidence,
		})
		telemetry.PatternMatches.WithLabelValues(p.Category).Inc()
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Pattern.CVSSScore > matches[j].Pattern.CVSSScore
	})
	return matches, nil
}

// snippet returns the full source line containing the match, trimmed.
func snippet(source string, start, end int) string {
	lineStart := strings.LastIndexByte(source[:start], '\n') + 1
	lineEnd := strings.IndexByte(source[end:], '\n')
	if lineEnd == -1 {
		lineEnd = len(source)
	} else {
		lineEnd += end
	}
	return strings.TrimSpace(source[lineStart:lineEnd])
}

// Ensure interface compliance
var _ ports.VulnMatcher = (*PatternMatcher)(nil)
