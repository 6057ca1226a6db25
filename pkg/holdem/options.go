package holdem

import "errors"

// Options configures how a hand of Texas Hold'em is played
type Options struct {
	SmallBlind int
	BigBlind   int
}

// DefaultOptions returns the default hand options
func DefaultOptions() Options {
	return Options{
		SmallBlind: 1,
		BigBlind:   2,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be >= small blind")
	}

	return nil
}
