package repair

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// applicationTypePrefixes are stripped from application numbers before the
// canonical record URL is computed. Longer prefixes first so NDA wins over ND.
var applicationTypePrefixes = []string{"ANDA", "BLA", "NDA", "BL", "ND"}

// ExtractDrugName derives a display name from raw openfda metadata via an
// ordered fallback chain: brand name (array, then scalar), openfda-nested
// brand name, generic name (array, scalar), openfda-nested generic name.
// The first non-empty hit wins; an empty string means nothing usable exists,
// which is a normal outcome for sparse metadata.
func ExtractDrugName(raw map[string]interface{}) string {
	if raw == nil {
		return ""
	}

	if name := stringField(raw, "brand_name"); name != "" {
		return name
	}
	if nested, ok := raw["openfda"].(map[string]interface{}); ok {
		if name := stringField(nested, "brand_name"); name != "" {
			return name
		}
	}
	if name := stringField(raw, "generic_name"); name != "" {
		return name
	}
	if nested, ok := raw["openfda"].(map[string]interface{}); ok {
		if name := stringField(nested, "generic_name"); name != "" {
			return name
		}
	}

	return ""
}

// stringField reads a field that may be a JSON array of strings or a scalar
// string, preferring the first array element.
func stringField(raw map[string]interface{}, key string) string {
	switch value := raw[key].(type) {
	case []interface{}:
		for _, entry := range value {
			if s, ok := entry.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	case string:
		return strings.TrimSpace(value)
	}
	return ""
}

// CleanApplicationNumber strips the application-type prefix (BLA, NDA, ANDA,
// BL, ND; case-insensitive) from an application number. An empty input stays
// empty.
func CleanApplicationNumber(applicationNumber string) string {
	if applicationNumber == "" {
		return ""
	}

	upper := strings.ToUpper(applicationNumber)
	for _, prefix := range applicationTypePrefixes {
		if strings.HasPrefix(upper, prefix) {
			return applicationNumber[len(prefix):]
		}
	}

	return applicationNumber
}

// CanonicalURL computes the canonical record URL for a cleaned application
// number.
func CanonicalURL(cleanedNumber string) string {
	return "https://www.accessdata.fda.gov/scripts/cder/daf/index.cfm?event=overview.process&ApplNo=" + cleanedNumber
}

var titleCaser = cases.Title(language.English)

// displayName normalizes an all-caps openfda name ("KEYTRUDA") to display
// casing. Mixed-case names pass through unchanged.
func displayName(name string) string {
	if name == "" || name != strings.ToUpper(name) {
		return name
	}
	return titleCaser.String(strings.ToLower(name))
}
