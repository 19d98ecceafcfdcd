package expreval

// Env configures a single evaluation.
type Env struct {
	// Ref resolves identifiers the expression references. It is consulted
	// for top-level identifiers (with the global marker as receiver) and
	// for every chained member access. A nil Ref makes every identifier
	// lookup fail with a reference error.
	Ref RefFunc

	// NoCase makes string ordering comparisons case-insensitive. It
	// affects <, <=, >, >= and the equality operators between strings;
	// identifier resolution is unaffected.
	NoCase bool
}

// Default configuration knobs.
const (
	// DefaultRegionSize is the default size of a session's bump region.
	DefaultRegionSize = 1024
	// DefaultMaxDepth is the default recursion ceiling. Exceeding it
	// yields the "MaxDepthError" error value.
	DefaultMaxDepth = 100
)

// Session owns the transient storage for evaluations. Values returned by
// [Session.Eval] may borrow from the session arena and remain valid until
// [Session.Cleanup].
//
// A Session must not be used from multiple goroutines at once. Independent
// sessions share nothing and may run concurrently.
//
// Create instances with [NewSession].
type Session struct {
	arena    *arena
	maxDepth int
}

// Option configures a [Session].
type Option func(*sessionConfig)

type sessionConfig struct {
	allocFn    AllocFunc
	regionSize int
	maxDepth   int
}

// WithRegionSize sets the size in bytes of the session's bump region.
// Allocations beyond the region fall back to overflow blocks.
func WithRegionSize(n int) Option {
	return func(c *sessionConfig) {
		c.regionSize = n
	}
}

// WithMaxDepth sets the recursion ceiling for nested expressions.
func WithMaxDepth(n int) Option {
	return func(c *sessionConfig) {
		c.maxDepth = n
	}
}

// WithAllocator overrides the allocator used for the arena's overflow
// blocks. A nil return from fn reports allocation failure; evaluation then
// returns the out-of-memory error value instead of the result. Hosts use
// this to bound memory or to inject failures under test.
func WithAllocator(fn AllocFunc) Option {
	return func(c *sessionConfig) {
		c.allocFn = fn
	}
}

// NewSession creates a [Session] with the given options.
func NewSession(opts ...Option) *Session {
	cfg := sessionConfig{
		regionSize: DefaultRegionSize,
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		arena:    newArena(cfg.regionSize, cfg.allocFn),
		maxDepth: cfg.maxDepth,
	}
}

// Eval evaluates an expression and returns the resulting value. A nil env
// evaluates with no identifier resolution and case-sensitive comparisons.
//
// Empty or whitespace-only input yields undefined. Failures of any kind
// (syntax, unknown identifier, allocation failure, recursion depth) are
// reported as error values, never as panics.
func (s *Session) Eval(expr string, env *Env) Value {
	return s.EvalBytes([]byte(expr), env)
}

// EvalBytes is [Session.Eval] over a borrowed byte slice. String values in
// the result may alias expr; the caller must keep it unmodified while the
// result is in use.
func (s *Session) EvalBytes(expr []byte, env *Env) Value {
	return evalForEach(s, expr, env, nil, 0)
}

// Cleanup releases all arena memory held by the session. Values returned
// by earlier Eval calls must not be used afterward.
func (s *Session) Cleanup() {
	s.arena.reset()
}

// MemStats returns memory statistics accumulated since the last Cleanup.
func (s *Session) MemStats() MemStats {
	return s.arena.stats()
}

// Eval evaluates an expression in a throwaway session. The result remains
// valid for as long as the caller references it; storage is reclaimed by
// the garbage collector.
func Eval(expr string, env *Env) Value {
	return NewSession().Eval(expr, env)
}
