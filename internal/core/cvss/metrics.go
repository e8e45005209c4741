// Package cvss implements the CVSS v3.1 Base and Temporal scoring system
// as published by FIRST (https://www.first.org/cvss/v3.1/specification-document).
//
// The package is purely computational: no I/O, no shared state. All functions
// take their inputs by value and may be called concurrently.
package cvss

import (
	"errors"
	"fmt"
)

// Metric abbreviations as used in vector strings.
const (
	MetricAttackVector        = "AV"
	MetricAttackComplexity    = "AC"
	MetricPrivilegesRequired  = "PR"
	MetricUserInteraction     = "UI"
	MetricScope               = "S"
	MetricConfidentiality     = "C"
	MetricIntegrity           = "I"
	MetricAvailability        = "A"
	MetricExploitCodeMaturity = "E"
	MetricRemediationLevel    = "RL"
	MetricReportConfidence    = "RC"
)

// Scope values, referenced by the scoring formulas.
const (
	ScopeUnchanged = "U"
	ScopeChanged   = "C"
)

// ErrIncompleteVector is returned when scoring is requested on a vector
// with one or more required base metrics unset.
var ErrIncompleteVector = errors.New("cvss: required base metric unset")

// InvalidMetricError reports an assignment outside a metric's enumerated domain.
type InvalidMetricError struct {
	Metric string
	Value  string
}

func (e *InvalidMetricError) Error() string {
	return fmt.Sprintf("cvss: invalid value %q for metric %s", e.Value, e.Metric)
}

// MetricVector holds the CVSS v3.1 metric selections. The zero value of every
// field is the empty string, meaning "unset": there are no implicit metric
// defaults, and scoring an incomplete vector fails with ErrIncompleteVector.
//
// The eight base metrics are required for scoring. The three temporal metrics
// are optional but only take effect when all three are set. The environmental
// metrics are modeled for forward compatibility and have no scoring effect.
type MetricVector struct {
	// Base metrics (required).
	AttackVector       string `json:"attack_vector"`       // N, A, L, P
	AttackComplexity   string `json:"attack_complexity"`   // H, L
	PrivilegesRequired string `json:"privileges_required"` // N, L, H
	UserInteraction    string `json:"user_interaction"`    // N, R
	Scope              string `json:"scope"`               // U, C
	Confidentiality    string `json:"confidentiality"`     // N, L, H
	Integrity          string `json:"integrity"`           // N, L, H
	Availability       string `json:"availability"`        // N, L, H

	// Temporal metrics (optional, all-or-nothing).
	ExploitCodeMaturity string `json:"exploit_code_maturity,omitempty"` // X, H, F, P, U
	RemediationLevel    string `json:"remediation_level,omitempty"`     // X, U, W, T, O
	ReportConfidence    string `json:"report_confidence,omitempty"`     // X, C, R, U

	// Environmental metrics (declared, not scored).
	ConfidentialityReq         string `json:"confidentiality_req,omitempty"` // X, H, M, L
	IntegrityReq               string `json:"integrity_req,omitempty"`       // X, H, M, L
	AvailabilityReq            string `json:"availability_req,omitempty"`    // X, H, M, L
	ModifiedAttackVector       string `json:"modified_attack_vector,omitempty"`
	ModifiedAttackComplexity   string `json:"modified_attack_complexity,omitempty"`
	ModifiedPrivilegesRequired string `json:"modified_privileges_required,omitempty"`
	ModifiedUserInteraction    string `json:"modified_user_interaction,omitempty"`
	ModifiedScope              string `json:"modified_scope,omitempty"`
	ModifiedConfidentiality    string `json:"modified_confidentiality,omitempty"`
	ModifiedIntegrity          string `json:"modified_integrity,omitempty"`
	ModifiedAvailability       string `json:"modified_availability,omitempty"`
}

// metricDomain describes one metric: where it lives on the vector and which
// single-character codes it accepts.
type metricDomain struct {
	field  func(*MetricVector) *string
	values []string
}

// domains keys the enumerated domains by metric abbreviation. Kept as a flat
// lookup table so the accepted codes stay auditable against the published
// specification.
var domains = map[string]metricDomain{
	MetricAttackVector:        {func(v *MetricVector) *string { return &v.AttackVector }, []string{"N", "A", "L", "P"}},
	MetricAttackComplexity:    {func(v *MetricVector) *string { return &v.AttackComplexity }, []string{"H", "L"}},
	MetricPrivilegesRequired:  {func(v *MetricVector) *string { return &v.PrivilegesRequired }, []string{"N", "L", "H"}},
	MetricUserInteraction:     {func(v *MetricVector) *string { return &v.UserInteraction }, []string{"N", "R"}},
	MetricScope:               {func(v *MetricVector) *string { return &v.Scope }, []string{"U", "C"}},
	MetricConfidentiality:     {func(v *MetricVector) *string { return &v.Confidentiality }, []string{"N", "L", "H"}},
	MetricIntegrity:           {func(v *MetricVector) *string { return &v.Integrity }, []string{"N", "L", "H"}},
	MetricAvailability:        {func(v *MetricVector) *string { return &v.Availability }, []string{"N", "L", "H"}},
	MetricExploitCodeMaturity: {func(v *MetricVector) *string { return &v.ExploitCodeMaturity }, []string{"X", "H", "F", "P", "U"}},
	MetricRemediationLevel:    {func(v *MetricVector) *string { return &v.RemediationLevel }, []string{"X", "U", "W", "T", "O"}},
	MetricReportConfidence:    {func(v *MetricVector) *string { return &v.ReportConfidence }, []string{"X", "C", "R", "U"}},
}

// baseMetrics lists the required metrics in canonical vector order.
var baseMetrics = []string{
	MetricAttackVector, MetricAttackComplexity, MetricPrivilegesRequired,
	MetricUserInteraction, MetricScope, MetricConfidentiality,
	MetricIntegrity, MetricAvailability,
}

// temporalMetrics lists the optional metrics in canonical vector order.
var temporalMetrics = []string{
	MetricExploitCodeMaturity, MetricRemediationLevel, MetricReportConfidence,
}

// Set assigns a value to the metric identified by its abbreviation.
// Assigning a value outside the metric's domain fails with InvalidMetricError;
// unknown metric abbreviations also fail.
func (v *MetricVector) Set(metric, value string) error {
	dom, ok := domains[metric]
	if !ok {
		return &InvalidMetricError{Metric: metric, Value: value}
	}
	for _, allowed := range dom.values {
		if value == allowed {
			*dom.field(v) = value
			return nil
		}
	}
	return &InvalidMetricError{Metric: metric, Value: value}
}

// get returns the current value of a metric by abbreviation.
func (v *MetricVector) get(metric string) string {
	dom, ok := domains[metric]
	if !ok {
		return ""
	}
	return *dom.field(v)
}

// Validate checks that every populated field belongs to its enumerated
// domain. Unset fields are not an error here; completeness is checked by
// the scoring entry points.
func (v MetricVector) Validate() error {
	for _, metric := range append(append([]string{}, baseMetrics...), temporalMetrics...) {
		val := v.get(metric)
		if val == "" {
			continue
		}
		if err := v.validateValue(metric, val); err != nil {
			return err
		}
	}
	return nil
}

func (v MetricVector) validateValue(metric, value string) error {
	for _, allowed := range domains[metric].values {
		if value == allowed {
			return nil
		}
	}
	return &InvalidMetricError{Metric: metric, Value: value}
}

// IsComplete reports whether all eight required base metrics are set.
func (v MetricVector) IsComplete() bool {
	for _, metric := range baseMetrics {
		if v.get(metric) == "" {
			return false
		}
	}
	return true
}

// HasTemporal reports whether all three temporal metrics are set.
// Partial temporal selections have no scoring effect.
func (v MetricVector) HasTemporal() bool {
	return v.ExploitCodeMaturity != "" && v.RemediationLevel != "" && v.ReportConfidence != ""
}
