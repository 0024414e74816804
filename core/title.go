package core

// Title represents a lendable title with a limited number of physical copies.
//
// The on-shelf count is always derived from the loan event log, it is never
// stored on the record.
type Title struct {
	ID          TitleIDString
	Name        string
	TotalCopies int
	Category    string
	Language    string
}
