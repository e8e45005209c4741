package reporting

import (
	"strings"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// RecommendationEngine generates actionable remediation recommendations
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new recommendation engine instance
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// keyword-matched recommendations for common Solidity vulnerability classes
var vulnRecommendations = []struct {
	keyword string
	text    string
}{
	{"reentrancy", "Apply the checks-effects-interactions pattern and add reentrancy guards (e.g. OpenZeppelin ReentrancyGuard) to all functions performing external calls."},
	{"tx.origin", "Replace tx.origin authorization checks with msg.sender. tx.origin is spoofable through intermediate contracts."},
	{"unchecked", "Check the boolean return value of every low-level call, or switch to transfer/send wrappers that revert on failure."},
	{"randomness", "Do not derive randomness from block properties. Use a verifiable randomness source such as Chainlink VRF or a commit-reveal scheme."},
	{"selfdestruct", "Restrict selfdestruct behind multi-sig or timelocked governance, or remove it entirely if contract destruction is not a requirement."},
	{"loop", "Bound loop iterations or move per-user work to a pull-based pattern so a growing array cannot exceed the block gas limit."},
	{"zero address", "Validate address parameters against the zero address before assignment to prevent irrecoverable misconfiguration."},
	{"overflow", "Use Solidity >=0.8 checked arithmetic or SafeMath for older compilers."},
	{"access", "Gate privileged functions with explicit role checks (e.g. OpenZeppelin AccessControl) and emit events on role changes."},
}

var generalRecommendations = []string{
	"Add comprehensive unit tests covering failure paths and adversarial inputs before deployment.",
	"Run static analysis (Slither, Mythril) as part of CI and triage every reported issue.",
	"Commission an independent audit before mainnet deployment and after any significant change.",
}

// GenerateRecommendations derives prioritized remediation guidance from the
// top findings, padding with general guidance when few specifics apply.
func (re *RecommendationEngine) GenerateRecommendations(topFindings []domain.Finding) []string {
	var recs []string
	seen := make(map[string]bool)

	for _, f := range topFindings {
		title := strings.ToLower(f.Title + " " + f.Description)
		for _, vr := range vulnRecommendations {
			if strings.Contains(title, vr.keyword) && !seen[vr.keyword] {
				seen[vr.keyword] = true
				recs = append(recs, vr.text)
			}
		}
	}

	// Add general recommendations if we have fewer than 3
	if len(recs) < 3 {
		recs = append(recs, generalRecommendations...)
	}

	// Limit to top 5 recommendations
	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}
