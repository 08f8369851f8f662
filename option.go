package bptree

import "strings"

// Options configures tree behavior.
type Options struct {
	logger    Logger
	compare   func(a, b string) int
	custom    bool // compare was replaced, distinct strings may be equal keys
	cacheSize int  // Entries in the search result cache. 0 disables it.
	verify    bool // Run Verify after every mutation and panic on failure.
}

// DefaultOptions returns the default configuration: lexicographic key order,
// no search cache, no logging and no per-mutation verification.
//
// goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		logger:  DiscardLogger{},
		compare: strings.Compare,
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger sets the logger that receives structural events such as root
// growth and collapse. A nil logger restores the discarding default.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *Options) {
		if logger == nil {
			logger = DiscardLogger{}
		}
		opts.logger = logger
	}
}

// WithComparator replaces the lexicographic key order. compare must define a
// strict total order and must not change for the lifetime of the tree.
//
//goland:noinspection GoUnusedExportedFunction
func WithComparator(compare func(a, b string) int) Option {
	return func(opts *Options) {
		opts.custom = compare != nil
		if compare == nil {
			compare = strings.Compare
		}
		opts.compare = compare
	}
}

// WithSearchCache keeps recent Search results in an LRU of the given size.
// Sizes below 16 are raised to 16. Entries are invalidated when their key is
// inserted, updated or deleted. With a custom comparator any mutation drops
// the whole cache, since one key may be looked up under several spellings.
//
//goland:noinspection GoUnusedExportedFunction
func WithSearchCache(entries int) Option {
	return func(opts *Options) {
		opts.cacheSize = entries
	}
}

// WithVerify checks every structural invariant after each mutation. This is
// O(N) per mutation and meant for tests and debugging.
//
//goland:noinspection GoUnusedExportedFunction
func WithVerify(enabled bool) Option {
	return func(opts *Options) {
		opts.verify = enabled
	}
}
