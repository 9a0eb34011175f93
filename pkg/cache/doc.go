// Package cache provides a small generic, thread-safe LRU cache.
//
// The validator uses it to memoize compiled regular expressions so that
// rules built once per validation pass do not recompile the same pattern:
//
//	patterns := cache.NewLRU[string, *regexp.Regexp](256)
//
//	re, err := patterns.GetOrCompute(`^[a-z]+$`, regexp.Compile)
//	if err != nil {
//		// the pattern is invalid; nothing was cached
//	}
//
// When the cache is full the least recently used entry is evicted. Get,
// Put and GetOrCompute count as a use. Errors returned by the compute
// function are never cached.
package cache
