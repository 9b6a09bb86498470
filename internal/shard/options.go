package shard

import (
	"runtime"

	"github.com/idelchi/gosplit/internal/encryption"
)

// Options carries the parameters of a split or join.
type Options struct {
	// Scheme selects the encryption construction used by Split.
	// Join reads the scheme from the ciphertext and ignores this field.
	Scheme encryption.Scheme

	// Parallel bounds the number of chunks hashed concurrently.
	// Values below 1 select the number of CPUs.
	Parallel int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Scheme:   encryption.DefaultScheme,
		Parallel: runtime.NumCPU(),
	}
}

func (o Options) limit() int {
	if o.Parallel < 1 {
		return runtime.NumCPU()
	}

	return o.Parallel
}
