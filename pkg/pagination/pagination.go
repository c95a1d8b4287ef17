package pagination

const (
	// DefaultLimit is the standard result cap for catalog and order listings.
	DefaultLimit = 50
	// EventsDefaultLimit is the result cap for analytics event reads.
	EventsDefaultLimit = 100
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 500
)

// Normalize clamps a requested limit to [1, MaxLimit], substituting def when
// the request carries no usable value.
func Normalize(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
