package jsonshape

import "go.uber.org/zap"

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement applied while parsing JSON.
type Strictness struct {
	// OnDuplicateKey selects how repeated object keys are treated. Ignore keeps
	// the first position and the last value, Warn does the same and logs, Error
	// fails the parse.
	OnDuplicateKey Severity
}

// Options configures a Universe. When several are passed to New the last one
// wins.
type Options struct {
	// NameCapacity bounds the name arena in bytes. Zero lets it grow.
	NameCapacity int
	// TypeBuckets is the initial size of the shape and binding indexes.
	TypeBuckets int
	// MaxLoad is the index occupancy that triggers a rehash (default 0.7).
	MaxLoad float64
	// PoolItemCount is the number of descriptors per store bucket (1..64).
	PoolItemCount int
	// EmptyArrayAsNone infers `[]` as Array<None> instead of Array<Unknown>.
	EmptyArrayAsNone bool

	Strictness Strictness
	// MaxDepth limits container nesting while parsing (0 = unlimited).
	MaxDepth int
	// MaxBytes limits the size of a single parsed document (0 = unlimited).
	MaxBytes int64

	// Logger receives debug traces of interning and loading. Nil disables
	// logging.
	Logger *zap.Logger
}

func normalizeOptions(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.TypeBuckets <= 0 {
		opt.TypeBuckets = 64
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	return opt
}
