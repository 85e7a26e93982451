package clock

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Regions whose calendars conventionally start on a day other than Monday.
var (
	sundayFirst = map[string]bool{
		"AG": true, "AS": true, "BR": true, "BS": true, "BT": true, "BW": true,
		"BZ": true, "CA": true, "CN": true, "CO": true, "DM": true, "DO": true,
		"ET": true, "GT": true, "GU": true, "HK": true, "HN": true, "ID": true,
		"IL": true, "IN": true, "JM": true, "JP": true, "KE": true, "KH": true,
		"KR": true, "MO": true, "MX": true, "NI": true, "PA": true, "PE": true,
		"PH": true, "PK": true, "PR": true, "PT": true, "PY": true, "SA": true,
		"SG": true, "SV": true, "TH": true, "TT": true, "TW": true, "UM": true,
		"US": true, "VE": true, "VI": true, "WS": true, "YE": true, "ZA": true,
		"ZW": true,
	}
	saturdayFirst = map[string]bool{
		"AE": true, "AF": true, "BH": true, "DJ": true, "DZ": true, "EG": true,
		"IQ": true, "IR": true, "JO": true, "KW": true, "LY": true, "OM": true,
		"QA": true, "SD": true, "SY": true,
	}
)

// FirstDayForLocale returns the conventional first day of the week for a
// BCP 47 locale such as "en-US" or "de_DE". Locales without an explicit
// region use the region their language most likely implies.
func FirstDayForLocale(locale string) (time.Weekday, error) {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return time.Sunday, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return time.Sunday, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	region, _ := tag.Region()
	code := region.String()
	switch {
	case sundayFirst[code]:
		return time.Sunday, nil
	case saturdayFirst[code]:
		return time.Saturday, nil
	}
	return time.Monday, nil
}

// ParseWeekday parses a weekday name or prefix, such as "mon" or "Sunday".
func ParseWeekday(val string) (time.Weekday, error) {
	lc := strings.ToLower(strings.TrimSpace(val))
	if len(lc) >= 2 {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if strings.HasPrefix(strings.ToLower(wd.String()), lc) {
				return wd, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", val)
}
