package models

// Disposition is the classification outcome of a single hit. Exactly one
// value is assigned per hit; only Accepted hits reach aggregation.
type Disposition string

const (
	DispositionAccepted      Disposition = "accepted"
	DispositionBot           Disposition = "bot"
	DispositionPrerender     Disposition = "prerender"
	DispositionFilteredLocal Disposition = "filtered_local"
	DispositionFilteredFrame Disposition = "filtered_frame"
	DispositionDuplicate     Disposition = "duplicate"
)

func (d Disposition) String() string { return string(d) }
