package validator

import (
	"regexp"
	"strings"
)

const (
	DefaultDateFormat    = "dd/mm/yyyy"
	DefaultDateSeparator = "[,-./]"
)

// DateRule checks a Gregorian date against one or more formats built from
// the tokens d, dd, m, mm, yy and yyyy, split by a separator expression.
// Two digit years of 70 and above belong to the 1900s, the others to the
// 2000s.
type DateRule struct {
	*Base
	formats   []string
	separator string
	sep       *regexp.Regexp
}

func newDateRule(key string, value any, params Params, reg *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	formats, err := params.Strings(ParamFormat, []string{DefaultDateFormat})
	if err != nil {
		return nil, err
	}
	separator, err := params.String(ParamSeparator, DefaultDateSeparator)
	if err != nil {
		return nil, err
	}
	sep, err := reg.compileExpr(separator)
	if err != nil {
		return nil, err
	}

	return &DateRule{Base: base, formats: formats, separator: separator, sep: sep}, nil
}

func (r *DateRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	date := Stringify(r.value)
	usable := false
	for _, format := range r.formats {
		tokens, ok := dateTokens(r.sep, format)
		if !ok {
			continue
		}
		usable = true
		if checkDateTokens(r.sep, tokens, date) {
			return StatusValid
		}
	}

	if !usable {
		return r.SetAndReturnError(CodeInvalidDateFormat, map[string]string{
			"%format%":    Stringify(r.formats),
			"%separator%": r.separator,
		})
	}

	return r.SetAndReturnError(CodeInvalidDate, nil)
}

// CheckDate reports whether date matches format with parts split by the
// separator expression, and names an existing calendar day.
func CheckDate(separator, format, date string) bool {
	sep, err := regexp.Compile(separator)
	if err != nil {
		return false
	}
	tokens, ok := dateTokens(sep, format)
	if !ok {
		return false
	}
	return checkDateTokens(sep, tokens, date)
}

// dateTokens splits a format into exactly three distinct known tokens, one
// each for day, month and year.
func dateTokens(sep *regexp.Regexp, format string) ([]string, bool) {
	tokens := sep.Split(format, -1)
	if len(tokens) != 3 {
		return nil, false
	}

	var day, month, year int
	for _, t := range tokens {
		switch t {
		case "d", "dd":
			day++
		case "m", "mm":
			month++
		case "yy", "yyyy":
			year++
		default:
			return nil, false
		}
	}

	return tokens, day == 1 && month == 1 && year == 1
}

func checkDateTokens(sep *regexp.Regexp, tokens []string, date string) bool {
	parts := sep.Split(date, -1)
	if len(parts) != 3 {
		return false
	}

	var d, m, y int
	for i, t := range tokens {
		n := leadingInt(parts[i])
		switch t {
		case "d", "dd":
			d = n
		case "m", "mm":
			m = n
		case "yy":
			if n >= 70 {
				y = n + 1900
			} else {
				y = n + 2000
			}
		case "yyyy":
			y = n
		}
	}

	if d < 1 || m < 1 || m > 12 || y < 1 {
		return false
	}

	return d <= daysIn(m, y)
}

// leadingInt parses the optional sign and digits at the start of s, like a
// lenient integer cast: "07x" is 7, "x" is 0.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<31 {
			break
		}
	}

	if neg {
		return -n
	}
	return n
}

func daysIn(month, year int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

// TimeRule checks hh:mm or hh:mm:ss values.
type TimeRule struct {
	*Base
}

func newTimeRule(key string, value any, params Params, _ *Registry) (Rule, error) {
	base, err := NewBase(key, value, params)
	if err != nil {
		return nil, err
	}
	return &TimeRule{Base: base}, nil
}

func (r *TimeRule) Validate() Status {
	if status := r.Base.Validate(); status != StatusCheck {
		return status
	}

	if !CheckTime(Stringify(r.value)) {
		return r.SetAndReturnError(CodeInvalidTime, nil)
	}

	return StatusValid
}

// CheckTime reports whether s is a time of day written as hh:mm or
// hh:mm:ss. The hour is padded with zeros on the left while minutes and
// seconds are padded on the right, so "8:2:4" reads as 08:20:40.
func CheckTime(s string) bool {
	tokens := strings.Split(s, ":")
	if len(tokens) < 2 || len(tokens) > 3 {
		return false
	}

	second := "0"
	if len(tokens) == 3 {
		second = tokens[2]
	}

	normalized := padLeft(tokens[0], 2) + ":" + padRight(tokens[1], 2) + ":" + padRight(second, 2)

	return timePattern.MatchString(normalized)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("0", width-len(s))
}
