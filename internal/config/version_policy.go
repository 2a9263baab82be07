package config

import "strings"

// CurrentConfigVersion is the configVersion this build writes and reads.
const CurrentConfigVersion = "1"

// SupportedConfigVersions lists every configVersion this build accepts.
var SupportedConfigVersions = []string{CurrentConfigVersion}

// IsSupportedConfigVersion reports whether v is accepted by this build.
func IsSupportedConfigVersion(v string) bool {
	for _, s := range SupportedConfigVersions {
		if v == s {
			return true
		}
	}
	return false
}

// SupportedConfigVersionsCSV renders the supported versions for error
// messages.
func SupportedConfigVersionsCSV() string {
	return strings.Join(SupportedConfigVersions, ", ")
}
