package entities

// City belongs to a Country; the first city in Country.Cities is always
// its capital (spec.md §3).
type City struct {
	ID         ID
	Name       string
	X, Y       int
	Population int
	IsCapital  bool
}
