package utils

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// symbol suffix -> ISO 10383 MIC, see scmhub/calendar for supported codes
var suffixMIC = map[string]string{
	".NS": "xnse",
	".BO": "xbom",
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".MI": "xmil",
	".MC": "xmad",
	".SW": "xswx",
	".TO": "xtse",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".SS": "xshg",
	".SZ": "xshe",
}

// TradingCalendar tells trading days apart using scmhub/calendar.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
}

// -----------------------------------------------------------------------------

// ResolveMIC picks the market code: an explicit mic wins, then the symbol
// suffix, then NYSE.
func ResolveMIC(symbol, mic string) string {
	if mic != "" {
		return strings.ToLower(mic)
	}
	for suffix, code := range suffixMIC {
		if strings.HasSuffix(strings.ToUpper(symbol), suffix) {
			return code
		}
	}
	return "xnys"
}

// -----------------------------------------------------------------------------

// GetCalendar returns the exchange calendar for a symbol. Unknown markets get
// a Mon-Fri fallback rather than another exchange's holidays.
func GetCalendar(symbol, mic string) *TradingCalendar {
	code := ResolveMIC(symbol, mic)

	cal := calendar.GetCalendar(code)
	if cal == nil {
		return &TradingCalendar{MIC: code, Fallback: true}
	}
	return &TradingCalendar{MIC: code, Calendar: cal}
}

// -----------------------------------------------------------------------------

// IsTradingDay checks a calendar date. Dates are compared as written, not
// shifted into the exchange timezone.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}

	// noon local time keeps the date stable under the exchange offset
	y, m, d := date.Date()
	local := time.Date(y, m, d, 12, 0, 0, 0, tc.Calendar.Loc)
	return tc.Calendar.IsBusinessDay(local)
}

// -----------------------------------------------------------------------------

// CountNonTradingDays returns how many dates the exchange was closed on.
func (tc *TradingCalendar) CountNonTradingDays(dates []time.Time) int {
	n := 0
	for _, d := range dates {
		if !tc.IsTradingDay(d) {
			n++
		}
	}
	return n
}
