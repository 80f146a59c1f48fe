package jaggedzip

type options struct {
	logger                 *Logger
	warnMissingCrossRefs   bool
	errorOnMissingEventIDs bool
	forceLimit             int
}

func defaultOptions() options {
	return options{
		logger:                 NewLogger(nil),
		warnMissingCrossRefs:   true,
		errorOnMissingEventIDs: true,
	}
}

// Option configures Builder behavior.
type Option func(*options)

// WithLogger sets the logger used for build diagnostics.
// If nil is passed, a no-op logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithWarnMissingCrossRefs controls whether a warning is logged when a
// cross-reference's index field or counts target is absent from the input.
// The cross-reference is dropped either way. Default: true.
func WithWarnMissingCrossRefs(warn bool) Option {
	return func(o *options) {
		o.warnMissingCrossRefs = warn
	}
}

// WithErrorOnMissingEventIDs controls whether Build fails when declared event
// ID fields are missing. When false, a warning is logged instead.
// Default: true.
func WithErrorOnMissingEventIDs(fail bool) Option {
	return func(o *options) {
		o.errorOnMissingEventIDs = fail
	}
}

// WithForceLimit bounds the number of cells Dataset.ForceAll materializes
// concurrently. Zero or negative means unbounded.
func WithForceLimit(n int) Option {
	return func(o *options) {
		o.forceLimit = n
	}
}
