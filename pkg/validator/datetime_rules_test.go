package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

func TestDateRule(t *testing.T) {
	runRuleCases(t, validator.KindDate, "date", []ruleCase{
		{name: "default format", value: "12/02/2017", status: validator.StatusValid},
		{name: "dash separator", value: "12-02-2017", status: validator.StatusValid},
		{name: "leap day", value: "29/02/2016", status: validator.StatusValid},
		{name: "leap day in a common year", value: "29/02/2017", status: validator.StatusError, err: "date: 29/02/2017 is not a valid date"},
		{name: "day zero", value: "0/02/2017", status: validator.StatusError, err: "date: 0/02/2017 is not a valid date"},
		{name: "thirteenth month", value: "01/13/2017", status: validator.StatusError, err: "date: 01/13/2017 is not a valid date"},
		{name: "two parts", value: "12/2017", status: validator.StatusError, err: "date: 12/2017 is not a valid date"},
		{name: "two digit year", value: "12/03/17", params: validator.Params{"format": "dd/mm/yy"}, status: validator.StatusValid},
		{name: "year first", value: "2020.04.30", params: validator.Params{"format": "yyyy/mm/dd"}, status: validator.StatusValid},
		{name: "one of several formats", value: "2020/12/31", params: validator.Params{"format": []any{"dd/mm/yyyy", "yyyy/mm/dd"}}, status: validator.StatusValid},
		{
			name:   "separator missing from the format",
			value:  "12/02/2017",
			params: validator.Params{"separator": "\\."},
			status: validator.StatusError,
			err:    "date: 12/02/2017 does not have a valid format: array (  0 => 'dd/mm/yyyy',) or separator: \\.",
		},
		{
			name:   "duplicated token",
			value:  "12/02/2017",
			params: validator.Params{"format": "dd/dd/mm"},
			status: validator.StatusError,
			err:    "date: 12/02/2017 does not have a valid format: array (  0 => 'dd/dd/mm',) or separator: [,-./]",
		},
	})
}

func TestDateRule_InvalidSeparator(t *testing.T) {
	_, err := validator.DefaultRegistry().Build(validator.Spec{Key: "date", Kind: validator.KindDate, Params: validator.Params{"separator": "[a-"}}, "x")
	assert.ErrorIs(t, err, validator.ErrInvalidParam)
}

func TestCheckDate(t *testing.T) {
	assert.True(t, validator.CheckDate("/", "mm/dd/yyyy", "02/29/2000"))
	assert.False(t, validator.CheckDate("/", "mm/dd/yyyy", "02/29/1900"))
	assert.True(t, validator.CheckDate("-", "d-m-yy", "1-1-70"))
	assert.False(t, validator.CheckDate("-", "d-m-y", "1-1-70"))
	assert.False(t, validator.CheckDate("[", "dd/mm/yyyy", "01/01/2000"))
}

func TestTimeRule(t *testing.T) {
	runRuleCases(t, validator.KindTime, "time", []ruleCase{
		{name: "hours and minutes", value: "23:59", status: validator.StatusValid},
		{name: "with seconds", value: "00:00:59", status: validator.StatusValid},
		{name: "short hour", value: "8:30", status: validator.StatusValid},
		{name: "short minutes pad right", value: "1:5", status: validator.StatusValid},
		{name: "hour overflow", value: "24:00", status: validator.StatusError, err: "time: 24:00 is not a valid time"},
		{name: "minute overflow", value: "12:60", status: validator.StatusError, err: "time: 12:60 is not a valid time"},
		{name: "hour only", value: "12", status: validator.StatusError, err: "time: 12 is not a valid time"},
		{name: "too many parts", value: "12:00:00:00", status: validator.StatusError, err: "time: 12:00:00:00 is not a valid time"},
	})
}

func TestCheckTime(t *testing.T) {
	assert.True(t, validator.CheckTime("8:2:4"))
	assert.False(t, validator.CheckTime("8:7:4"))
	assert.False(t, validator.CheckTime("ab:cd"))
}
