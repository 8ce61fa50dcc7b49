package memo

import (
	"time"

	"github.com/unkn0wn-root/hexbytes"
	"github.com/unkn0wn-root/hexbytes/provider"
)

const (
	defaultTTL      = 10 * time.Minute
	defaultMaxInput = 4096
)

type Options struct {
	// Namespace scopes keys as memo:<Namespace>:... Required.
	Namespace string
	// Provider stores framed results. Required.
	Provider provider.Provider
	// Codec computes misses. Default hexbytes.Fast.
	Codec hexbytes.Codec
	// TTL for stored results. Default 10m.
	TTL time.Duration
	// MaxInput bounds the input length eligible for memoization: bytes for
	// Encode/EncodeEllipsis, characters for Decode. Larger inputs go straight
	// to Codec. Default 4096.
	MaxInput int

	Logger hexbytes.Logger
	Hooks  hexbytes.Hooks
}
