package locale

import "strings"

const DefaultRegion = "US"

var timeZoneTags = map[string][]string{
	"IL": {"Asia/Jerusalem", "Israel", "Asia/Tel_Aviv"},
	"US": {
		"America/New_York", "America/Chicago", "America/Denver",
		"America/Los_Angeles", "US/Eastern", "US/Central", "US/Pacific",
	},
}

// DetectRegion maps an IANA timezone to a supported region code, falling
// back to DefaultRegion for anything unrecognized.
func DetectRegion(tz string) string {
	for region, zones := range timeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultRegion
}
