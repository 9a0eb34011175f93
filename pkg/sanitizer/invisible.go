package sanitizer

import (
	"strings"
	"unicode/utf8"
)

// RemoveInvisibleChars strips characters that are invisible or unsafe in
// user input:
//
//   - control bytes other than LF and CR
//   - percent encodings of those bytes (%00 to %1F except %0A and %0D, and %7F)
//   - overlong UTF-8 encodings of NUL (C0 80, E0 80-9F xx, F0 80-8F xx xx)
//   - zero width and bidirectional marks: U+200B to U+200F, U+202A to U+202E,
//     U+2060 to U+2064 and U+FEFF
//
// Removal repeats until nothing changes, so "%%7F00" is fully removed.
// Bytes that are not valid UTF-8 are otherwise kept as they are.
func RemoveInvisibleChars(s string) string {
	for {
		cleaned := removeInvisibleOnce(s)
		if cleaned == s {
			return s
		}
		s = cleaned
	}
}

func removeInvisibleOnce(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]

		if c == '%' && i+2 < len(s) && isEncodedControl(s[i+1], s[i+2]) {
			i += 3
			continue
		}
		if (c < 0x20 && c != '\n' && c != '\r') || c == 0x7f {
			i++
			continue
		}
		if n := overlongNull(s[i:]); n > 0 {
			i += n
			continue
		}
		if c < utf8.RuneSelf {
			b.WriteByte(c)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(c)
			i++
			continue
		}
		if !isInvisibleRune(r) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}

	return b.String()
}

// isEncodedControl matches the two hex digits of %00-%09, %0B, %0C,
// %0E, %0F, %10-%1F and %7F, in either case.
func isEncodedControl(hi, lo byte) bool {
	switch hi {
	case '0':
		return isHex(lo) && lo != 'a' && lo != 'A' && lo != 'd' && lo != 'D'
	case '1':
		return isHex(lo)
	case '7':
		return lo == 'f' || lo == 'F'
	}
	return false
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// overlongNull returns the length of an overlong NUL encoding at the start
// of s, or 0.
func overlongNull(s string) int {
	switch {
	case len(s) >= 2 && s[0] == 0xc0 && s[1] == 0x80:
		return 2
	case len(s) >= 3 && s[0] == 0xe0 && inRange(s[1], 0x80, 0x9f) && inRange(s[2], 0x80, 0xbf):
		return 3
	case len(s) >= 4 && s[0] == 0xf0 && inRange(s[1], 0x80, 0x8f) && inRange(s[2], 0x80, 0xbf) && inRange(s[3], 0x80, 0xbf):
		return 4
	}
	return 0
}

func inRange(c, lo, hi byte) bool {
	return c >= lo && c <= hi
}

func isInvisibleRune(r rune) bool {
	switch {
	case r >= 0x200b && r <= 0x200f,
		r >= 0x202a && r <= 0x202e,
		r >= 0x2060 && r <= 0x2064,
		r == 0xfeff:
		return true
	}
	return false
}
