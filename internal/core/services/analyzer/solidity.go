// Package analyzer implements static analysis of Solidity source: structural
// extraction (contracts, functions, state variables) and pattern-based
// detection of well-known weaknesses. It is intentionally regex-based; it
// trades completeness for zero toolchain dependencies and flags candidates
// for manual review rather than proving anything.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

var (
	licenseRegex  = regexp.MustCompile(`//\s*SPDX-License-Identifier:\s*([^\n]+)`)
	pragmaRegex   = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)
	contractRegex = regexp.MustCompile(`contract\s+(\w+)(?:\s+is\s+([^\{]+))?\s*\{`)
	functionRegex = regexp.MustCompile(`function\s+(\w+)\s*\(([^\)]*)\)([^\{;]*)(?:\{|;)`)
	stateVarRegex = regexp.MustCompile(`(uint\d*|int\d*|address|bool|string|bytes\d*)\s+(?:public|private|internal)?\s*(\w+)\s*;`)

	visibilityRegex = regexp.MustCompile(`external|public|internal|private`)
	mutabilityRegex = regexp.MustCompile(`view|pure`)
)

// balancedBody returns the contents between the opening brace at src[open]
// and its matching closing brace, or "" if the braces never balance.
func balancedBody(src string, open int) string {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i]
			}
		}
	}
	return ""
}

// ExtractContractInfo parses structural information out of Solidity source.
func ExtractContractInfo(source string) domain.ContractInfo {
	info := domain.ContractInfo{}

	if m := licenseRegex.FindStringSubmatch(source); m != nil {
		info.License = strings.TrimSpace(m[1])
	}
	if m := pragmaRegex.FindStringSubmatch(source); m != nil {
		info.SolidityVersion = strings.TrimSpace(m[1])
	}

	for _, loc := range contractRegex.FindAllStringSubmatchIndex(source, -1) {
		contract := domain.Contract{Name: source[loc[2]:loc[3]]}

		if loc[4] >= 0 {
			for _, base := range strings.Split(source[loc[4]:loc[5]], ",") {
				if b := strings.TrimSpace(base); b != "" {
					contract.Inheritance = append(contract.Inheritance, b)
				}
			}
		}

		// The declaration regex stops at the opening brace; the body is
		// recovered by brace counting so nested blocks don't truncate it.
		body := balancedBody(source, loc[1]-1)
		for _, fm := range functionRegex.FindAllStringSubmatch(body, -1) {
			fn := domain.Function{
				Name:       strings.TrimSpace(fm[1]),
				Parameters: strings.TrimSpace(fm[2]),
				Visibility: "internal", // Solidity default
			}
			if v := visibilityRegex.FindString(fm[3]); v != "" {
				fn.Visibility = v
			}
			fn.Mutability = mutabilityRegex.FindString(fm[3])
			contract.Functions = append(contract.Functions, fn)
		}

		for _, vm := range stateVarRegex.FindAllStringSubmatch(body, -1) {
			contract.StateVariables = append(contract.StateVariables, domain.StateVariable{
				Type: strings.TrimSpace(vm[1]),
				Name: strings.TrimSpace(vm[2]),
			})
		}

		info.Contracts = append(info.Contracts, contract)
	}

	return info
}

// Check is one static weakness detector applied to whole-file source.
type Check struct {
	Title       string
	Description string
	Severity    domain.FindingSeverity
	Match       func(source string) bool
}

var (
	callValueRegex     = regexp.MustCompile(`\.call\{value:`)
	balanceCheckRegex  = regexp.MustCompile(`require\(.*balance`)
	reentrancyGuard    = regexp.MustCompile(`ReentrancyGuard|nonReentrant`)
	txOriginRegex      = regexp.MustCompile(`tx\.origin`)
	rawCallRegex       = regexp.MustCompile(`\.call\(`)
	checkedCallRegex   = regexp.MustCompile(`require\(.*\.call`)
	loopRegex          = regexp.MustCompile(`for\s*\([^;]*;\s*[^;]*;\s*[^\)]*\)`)
	selfdestructRegex  = regexp.MustCompile(`(selfdestruct|suicide)\s*\(`)
	callInLoopRegex    = regexp.MustCompile(`for\s*\([^{]*\{[^}]*\.(call|send|transfer)`)
	blockPropRegex     = regexp.MustCompile(`block\.(timestamp|difficulty|coinbase|number)`)
	addressAssignRegex = regexp.MustCompile(`address\s+.*=`)
	zeroAddrCheckRegex = regexp.MustCompile(`require\(.*!=\s*address\(0\)`)
)

// checks is the detector table, in report order.
var checks = []Check{
	{
		Title:       "Potential Reentrancy Vulnerability",
		Description: "The contract uses low-level .call with value transfer but may not implement reentrancy guards.",
		Severity:    domain.SeverityHigh,
		Match: func(s string) bool {
			return callValueRegex.MatchString(s) && balanceCheckRegex.MatchString(s) && !reentrancyGuard.MatchString(s)
		},
	},
	{
		Title:       "Use of tx.origin for Authentication",
		Description: "Using tx.origin for authentication is vulnerable to phishing attacks. Use msg.sender instead.",
		Severity:    domain.SeverityMedium,
		Match:       func(s string) bool { return txOriginRegex.MatchString(s) },
	},
	{
		Title:       "Unchecked External Call",
		Description: "External call results should be checked to handle failures properly.",
		Severity:    domain.SeverityMedium,
		Match: func(s string) bool {
			return rawCallRegex.MatchString(s) && !checkedCallRegex.MatchString(s)
		},
	},
	{
		Title:       "Unbounded Loop",
		Description: "Contract contains loops that may iterate over unbounded data structures, risking gas limits.",
		Severity:    domain.SeverityLow,
		Match:       func(s string) bool { return loopRegex.MatchString(s) },
	},
	{
		Title:       "Use of selfdestruct",
		Description: "Contract can be self-destructed. Ensure this function is properly protected.",
		Severity:    domain.SeverityInfo,
		Match:       func(s string) bool { return selfdestructRegex.MatchString(s) },
	},
	{
		Title:       "External Call Inside Loop",
		Description: "Performing external calls inside loops can lead to DoS conditions.",
		Severity:    domain.SeverityHigh,
		Match:       func(s string) bool { return callInLoopRegex.MatchString(s) },
	},
	{
		Title:       "Weak Randomness Source",
		Description: "Using block properties as randomness sources is predictable and can be manipulated by miners.",
		Severity:    domain.SeverityMedium,
		Match:       func(s string) bool { return blockPropRegex.MatchString(s) },
	},
	{
		Title:       "Missing Zero Address Validation",
		Description: "Contract may not validate against zero addresses, risking fund loss or contract locking.",
		Severity:    domain.SeverityLow,
		Match: func(s string) bool {
			return addressAssignRegex.MatchString(s) && !zeroAddrCheckRegex.MatchString(s)
		},
	},
}

// CheckCommonVulnerabilities runs all detectors over the source and returns
// draft findings (no program binding, pending status) for the ones that hit.
func CheckCommonVulnerabilities(source string) []domain.Finding {
	var findings []domain.Finding
	for _, c := range checks {
		if !c.Match(source) {
			continue
		}
		f, err := domain.NewFinding(0, c.Title, c.Description, c.Severity)
		if err != nil {
			continue
		}
		findings = append(findings, *f)
	}
	return findings
}
