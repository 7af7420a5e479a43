package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// HashBytes is the size of a full transcript digest. Challenges are
	// sampled from the digest stream, so they never exceed this.
	HashBytes = 2 * SecBytes

	StatParam = 80

	// MaxDecodeSteps bounds the discrete-log search used to decode an
	// exponentially encoded tally. A tally can never exceed the number of
	// cast ballots, so callers normally pass a much tighter bound.
	MaxDecodeSteps = 1 << 24
)
