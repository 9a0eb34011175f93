package validator

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Error codes used as keys of the message tables.
const (
	CodeUndefined              = "undefinedCode"
	CodeEmptyKey               = "emptyKey"
	CodeInvalidString          = "invalidString"
	CodeInvalidStringLength    = "invalidStringLength"
	CodeInvalidNumeric         = "invalidNumeric"
	CodeInvalidNumericLessThan = "invalidNumericLessThan"
	CodeInvalidNumericGreater  = "invalidNumericGreaterThan"
	CodeInvalidBoolean         = "invalidBoolean"
	CodeInvalidArray           = "invalidArray"
	CodeInvalidArrayLength     = "invalidArrayLength"
	CodeInvalidRange           = "invalidRange"
	CodeInvalidChoice          = "invalidChoice"
	CodeInvalidPattern         = "invalidPattern"
	CodeInvalidEmail           = "invalidEmail"
	CodeInvalidIP              = "invalidIP"
	CodeInvalidIPFlag          = "invalidIPFlag"
	CodeInvalidJSON            = "invalidJsonFormat"
	CodeInvalidDate            = "invalidDate"
	CodeInvalidDateFormat      = "invalidDateFormat"
	CodeInvalidTime            = "invalidTime"
	CodeInvalidBicLength       = "invalidBicLength"
	CodeInvalidBicUpper        = "invalidBicUpper"
	CodeInvalidBicAlnum        = "invalidBicAlnum"
	CodeInvalidBicBankCode     = "invalidBicBankCode"
	CodeInvalidBicCountryCode  = "invalidBicCountryCode"
	CodeInvalidCompare         = "invalidCompare"
	CodeInvalidCallable        = "invalidCallable"
	CodeInvalidUUID            = "invalidUUID"
	CodeInvalidUUIDVersion     = "invalidUUIDVersion"
	CodeInvalidCollection      = "invalidCollection"
)

// defaultMessages is never mutated; rules copy it into their own table.
var defaultMessages = map[string]string{
	CodeUndefined:              "%key%: %value% has an undefined error code %code%",
	CodeEmptyKey:               "%key% is required and should not be empty: %value%",
	CodeInvalidString:          "%key% does not have a string value: %value%",
	CodeInvalidStringLength:    "%key%: The length of %value% is not between %min% and %max%",
	CodeInvalidNumeric:         "%key%: %value% is not numeric",
	CodeInvalidNumericLessThan: "%key%: %value% is less than %min%",
	CodeInvalidNumericGreater:  "%key%: %value% is greater than %max%",
	CodeInvalidBoolean:         "%key%: %value% is not a valid boolean",
	CodeInvalidArray:           "%key% does not have an array value: %value%",
	CodeInvalidArrayLength:     "%key%: The length of %value% is not between %min% and %max%",
	CodeInvalidRange:           "%key%: %value% is out of range %range%",
	CodeInvalidChoice:          "%key%: %item% is not in the given list : %list%",
	CodeInvalidPattern:         "%key%: %value% does not match %pattern%",
	CodeInvalidEmail:           "%key%: %value% is not a valid email",
	CodeInvalidIP:              "%key%: %value% is not a valid IP",
	CodeInvalidIPFlag:          "Filter IP flag: %flag% is not valid",
	CodeInvalidJSON:            "%key%: %value% is not a valid json format",
	CodeInvalidDate:            "%key%: %value% is not a valid date",
	CodeInvalidDateFormat:      "%key%: %value% does not have a valid format: %format% or separator: %separator%",
	CodeInvalidTime:            "%key%: %value% is not a valid time",
	CodeInvalidBicLength:       "%key%: %value% has an invalid length",
	CodeInvalidBicUpper:        "%key%: %value% should be uppercase",
	CodeInvalidBicAlnum:        "%key%: %value% should be alphanumeric",
	CodeInvalidBicBankCode:     "%key%: %value% has an invalid bank code",
	CodeInvalidBicCountryCode:  "%key%: %value% has an invalid country code",
	CodeInvalidCompare:         "%key%: %value% is not %label% %expected%",
	CodeInvalidCallable:        "%key%: %value% did not pass the callable check",
	CodeInvalidUUID:            "%key%: %value% is not a valid UUID",
	CodeInvalidUUIDVersion:     "%key%: %value% is not a version %version% UUID",
	CodeInvalidCollection:      "%key%: %value% is not in a collection",
}

// DefaultMessages returns a copy of the built-in message table.
func DefaultMessages() map[string]string {
	return maps.Clone(defaultMessages)
}

// Render substitutes every placeholder token of pattern with its value.
// Tokens are matched literally (e.g. "%min%") in a single left-to-right
// pass, so substituted values are never expanded again.
func Render(pattern string, placeholders map[string]string) string {
	if len(placeholders) == 0 {
		return pattern
	}

	tokens := slices.Sorted(maps.Keys(placeholders))
	pairs := make([]string, 0, len(tokens)*2)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		pairs = append(pairs, token, placeholders[token])
	}

	return strings.NewReplacer(pairs...).Replace(pattern)
}

// Stringify renders a value for embedding into an error message.
//
//   - nil renders as <NULL>, booleans as <TRUE> and <FALSE>
//   - slices, arrays and maps render as a single-line "array (...)" dump
//     with map keys sorted
//   - values without a textual form render as "<TypeName> object"
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "<NULL>"
	case bool:
		if v {
			return "<TRUE>"
		}
		return "<FALSE>"
	case string:
		return v
	case json.Number:
		return v.String()
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
		return strings.ReplaceAll(export(rv, 0), "\n", "")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return Stringify(rv.Bool())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "<NULL>"
		}
		return objectName(rv.Elem().Type())
	case reflect.Struct:
		return objectName(rv.Type())
	}

	return fmt.Sprint(value)
}

func objectName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return name + " object"
}

// export mimics a var_export style dump; Stringify strips the newlines.
func export(rv reflect.Value, indent int) string {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "NULL"
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		var b strings.Builder
		b.WriteString("array (\n")
		for i := range rv.Len() {
			writeEntry(&b, strconv.Itoa(i), rv.Index(i), indent)
		}
		b.WriteString(strings.Repeat(" ", indent) + ")")
		return b.String()
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(Stringify(a.Interface()), Stringify(b.Interface()))
		})
		var b strings.Builder
		b.WriteString("array (\n")
		for _, k := range keys {
			writeEntry(&b, exportKey(k), rv.MapIndex(k), indent)
		}
		b.WriteString(strings.Repeat(" ", indent) + ")")
		return b.String()
	}

	return exportScalar(rv)
}

func writeEntry(b *strings.Builder, key string, elem reflect.Value, indent int) {
	pad := strings.Repeat(" ", indent+2)
	for elem.Kind() == reflect.Interface && !elem.IsNil() {
		elem = elem.Elem()
	}

	b.WriteString(pad + key + " => ")
	switch elem.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		b.WriteString("\n" + pad + export(elem, indent+2))
	default:
		b.WriteString(export(elem, indent+2))
	}
	b.WriteString(",\n")
}

func exportKey(k reflect.Value) string {
	for k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return quote(Stringify(k.Interface()))
}

func exportScalar(rv reflect.Value) string {
	if !rv.IsValid() {
		return "NULL"
	}

	switch v := rv.Interface().(type) {
	case json.Number:
		return v.String()
	case string:
		return quote(v)
	case bool:
		return strconv.FormatBool(v)
	}

	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(rv.Float(), 'f', -1, 64)
		if !strings.ContainsAny(s, ".NI") {
			s += ".0"
		}
		return s
	case reflect.String:
		return quote(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL"
		}
	}

	return Stringify(rv.Interface())
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
