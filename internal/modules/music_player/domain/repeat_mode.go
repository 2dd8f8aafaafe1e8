package domain

// RepeatMode represents what happens when the current track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota // Default: stop, or advance when autoplay is on
	RepeatAll                   // Advance and wrap to the first track after the last
	RepeatOne                   // Restart the current track
)

// String returns the wire representation of the repeat mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

// Next returns the mode that follows m in the cycle Off -> All -> One -> Off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// ParseRepeatMode converts a string to a RepeatMode. Unknown values map to RepeatOff.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "all":
		return RepeatAll
	case "one":
		return RepeatOne
	default:
		return RepeatOff
	}
}
