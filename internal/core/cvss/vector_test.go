package cvss

import (
	"errors"
	"testing"
)

func TestVectorRoundTrip(t *testing.T) {
	vectors := []string{
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		"CVSS:3.1/AV:A/AC:H/PR:L/UI:R/S:C/C:L/I:N/A:L",
		"CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N",
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/E:F/RL:W/RC:R",
		"CVSS:3.1/AV:L/AC:L/PR:L/UI:N/S:C/C:H/I:L/A:N/E:X/RL:X/RC:X",
	}

	for _, s := range vectors {
		v, err := ParseVector(s)
		if err != nil {
			t.Fatalf("ParseVector(%q) failed: %v", s, err)
		}
		if got := v.String(); got != s {
			t.Errorf("round trip of %q produced %q", s, got)
		}
		// Parsing the serialization reconstructs an equal vector.
		again, err := ParseVector(v.String())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", v.String(), err)
		}
		if again != v {
			t.Errorf("re-parsed vector differs: %+v != %+v", again, v)
		}
	}
}

func TestParseVectorWithoutPrefix(t *testing.T) {
	v, err := ParseVector("AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")
	if err != nil {
		t.Fatalf("ParseVector failed: %v", err)
	}
	if v.AttackVector != "N" || v.Scope != "U" || v.Availability != "H" {
		t.Errorf("unexpected vector: %+v", v)
	}
}

func TestParseVectorPermissive(t *testing.T) {
	// Unknown keys are ignored, malformed tokens are skipped, empty
	// components are tolerated.
	v, err := ParseVector("CVSS:3.1/AV:N/XX:Y/garbage/A:B:C//AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")
	if err != nil {
		t.Fatalf("ParseVector failed: %v", err)
	}
	if !v.IsComplete() {
		t.Errorf("vector incomplete after permissive parse: %+v", v)
	}
}

func TestParseVectorOutOfDomainValue(t *testing.T) {
	_, err := ParseVector("CVSS:3.1/AV:Q/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")

	var invalid *InvalidMetricError
	if !errors.As(err, &invalid) {
		t.Fatalf("ParseVector = %v; want InvalidMetricError", err)
	}
	if invalid.Metric != MetricAttackVector || invalid.Value != "Q" {
		t.Errorf("InvalidMetricError = %+v; want AV/Q", invalid)
	}
}

func TestParseVectorLeavesUnmentionedUnset(t *testing.T) {
	v, err := ParseVector("AV:N/S:U")
	if err != nil {
		t.Fatalf("ParseVector failed: %v", err)
	}
	if v.AttackComplexity != "" || v.ExploitCodeMaturity != "" {
		t.Errorf("unmentioned metrics should stay unset: %+v", v)
	}
	if v.IsComplete() {
		t.Error("partial vector reported complete")
	}
}

func TestStringOmitsPartialTemporal(t *testing.T) {
	// Temporal metrics are emitted individually when set; unset ones are
	// simply absent.
	v := mustParse(t, "AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")
	v.RemediationLevel = "W"

	want := "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/RL:W"
	if got := v.String(); got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
}

func TestSetRejectsUnknownMetric(t *testing.T) {
	var v MetricVector
	if err := v.Set("MAV", "N"); err == nil {
		t.Error("Set accepted a metric outside the scoring surface")
	}
	if err := v.Set("AV", "N"); err != nil {
		t.Errorf("Set(AV, N) failed: %v", err)
	}
}
