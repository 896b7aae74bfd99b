package tti

// Kind identifies why a metric computation failed. The set is closed;
// callers branch on kind (via errors.Is against the exported sentinel
// values), never on message text.
type Kind int

const (
	// KindMissingFirstMeaningfulPaint means the trace carried no first
	// meaningful paint timestamp, so no quiet window can qualify.
	KindMissingFirstMeaningfulPaint Kind = iota

	// KindMissingDomContentLoaded means the trace carried no DOM
	// content loaded timestamp.
	KindMissingDomContentLoaded

	// KindNoCPUQuietPeriod means the main thread never went idle for a
	// qualifying window before the candidate list ran out.
	KindNoCPUQuietPeriod

	// KindNoNetworkQuietPeriod means the network never settled to the
	// allowed concurrency for a qualifying window.
	KindNoNetworkQuietPeriod
)

func (k Kind) String() string {
	switch k {
	case KindMissingFirstMeaningfulPaint:
		return "missing first meaningful paint"
	case KindMissingDomContentLoaded:
		return "missing DOM content loaded"
	case KindNoCPUQuietPeriod:
		return "no qualifying CPU quiet period"
	case KindNoNetworkQuietPeriod:
		return "no qualifying network quiet period"
	default:
		return "unknown"
	}
}

// Error is the failure value produced by Compute and the quiet-period
// matcher. Retrying with the same input yields the same error, so
// callers should treat these as terminal for the computation.
type Error struct {
	Kind Kind
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingFirstMeaningfulPaint:
		return "no first meaningful paint found in trace"
	case KindMissingDomContentLoaded:
		return "no DOM content loaded event found in trace"
	case KindNoCPUQuietPeriod:
		return "main thread never idled long enough after first meaningful paint"
	case KindNoNetworkQuietPeriod:
		return "network never settled to the allowed in-flight request count"
	default:
		return "consistently interactive could not be computed"
	}
}

// Is matches on kind so errors.Is works against the sentinels below
// even when the error has been wrapped.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingFirstMeaningfulPaint = &Error{Kind: KindMissingFirstMeaningfulPaint}
	ErrMissingDomContentLoaded     = &Error{Kind: KindMissingDomContentLoaded}
	ErrNoCPUQuietPeriod            = &Error{Kind: KindNoCPUQuietPeriod}
	ErrNoNetworkQuietPeriod        = &Error{Kind: KindNoNetworkQuietPeriod}
)
