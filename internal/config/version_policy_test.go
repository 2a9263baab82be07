package config

import "testing"

func TestVersionPolicy(t *testing.T) {
	if !IsSupportedConfigVersion(CurrentConfigVersion) {
		t.Fatalf("current version must always be supported")
	}
	if IsSupportedConfigVersion("0") || IsSupportedConfigVersion("") {
		t.Fatalf("unknown versions must be rejected")
	}
	if SupportedConfigVersionsCSV() != "1" {
		t.Fatalf("csv = %q", SupportedConfigVersionsCSV())
	}
}
