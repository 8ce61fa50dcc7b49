package hexbytes

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
type Hooks interface {
	// A sampled call produced a different result than Reference.
	// op ∈ {"encode", "encode_ellipsis", "decode"}
	Divergence(op, strategy string, inputLen int)

	// A memo entry was deleted on read.
	// reason ∈ {"corrupt", "kind_mismatch"}
	MemoSelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	MemoSetRejected(storageKey string)

	// Provider Get/Set/Del failed; the result was computed anyway.
	MemoProviderError(op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Divergence(string, string, int)  {}
func (NopHooks) MemoSelfHeal(string, string)     {}
func (NopHooks) MemoSetRejected(string)          {}
func (NopHooks) MemoProviderError(string, error) {}
