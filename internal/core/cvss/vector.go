package cvss

import "strings"

const vectorPrefix = "CVSS:3.1/"

// String serializes the vector in canonical order:
// AV, AC, PR, UI, S, C, I, A, then any set temporal metrics as E, RL, RC.
// Environmental metrics are never emitted.
func (v MetricVector) String() string {
	parts := make([]string, 0, len(baseMetrics)+len(temporalMetrics))
	for _, metric := range baseMetrics {
		parts = append(parts, metric+":"+v.get(metric))
	}
	for _, metric := range temporalMetrics {
		if val := v.get(metric); val != "" {
			parts = append(parts, metric+":"+val)
		}
	}
	return vectorPrefix + strings.Join(parts, "/")
}

// ParseVector decodes a CVSS v3.1 vector string into a MetricVector.
//
// Decoding is permissive about shape: the "CVSS:3.1/" prefix is optional,
// unknown metric keys are ignored, and malformed tokens (not exactly one ':')
// are skipped, leaving the corresponding fields unset. A recognized metric
// carrying a value outside its domain is rejected with InvalidMetricError,
// since an out-of-domain value must never be silently accepted.
func ParseVector(s string) (MetricVector, error) {
	var v MetricVector

	s = strings.TrimPrefix(s, vectorPrefix)

	for _, component := range strings.Split(s, "/") {
		if component == "" {
			continue
		}
		parts := strings.Split(component, ":")
		if len(parts) != 2 {
			continue
		}
		metric, value := parts[0], parts[1]
		if _, known := domains[metric]; !known {
			continue
		}
		if err := v.Set(metric, value); err != nil {
			return MetricVector{}, err
		}
	}

	return v, nil
}
