package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var licenseKeyRegex = regexp.MustCompile(`^[A-Z0-9]{5}(-[A-Z0-9]{5}){4}$`)

// NormalizeLicenseKey uppercases a license key and validates its format.
// Valid keys are 25 uppercase alphanumeric characters in five blocks of five
// separated by hyphens, e.g. ABCDE-FGHIJ-KLMNO-PQRST-UVWXY.
func NormalizeLicenseKey(value string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if !licenseKeyRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid license key. Expected five blocks of five characters (A-Z, 0-9) separated by hyphens")
	}
	return normalized, nil
}
