// Package sanitizer cleans untrusted text.
//
// RemoveInvisibleChars strips control bytes, their percent encodings,
// overlong NUL encodings and invisible Unicode marks, repeating until the
// text is stable. The remaining helpers are small string transforms
// (trimming, case conversion, whitespace and HTML handling) registered
// under names so that rule specifications can refer to them:
//
//	fns, err := sanitizer.Filters("strip_html", "collapse_whitespace", "title")
//	if err != nil {
//	    return err
//	}
//	name := sanitizer.Apply(sanitizer.RemoveInvisibleChars(raw), fns...)
//
// Apply and Compose chain transforms of any type. Every function is pure
// and safe for concurrent use.
package sanitizer
