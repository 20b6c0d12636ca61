package domain

// GuestNeed is the transient guest composition of a search request
type GuestNeed struct {
	Adults   int
	Children int
	Infants  int
	Rooms    int

	// InfantsUseBed - infants only consume bed capacity when true
	InfantsUseBed bool
}

// TotalBedsNeeded returns the number of beds the request actually requires
func (g GuestNeed) TotalBedsNeeded() int {
	beds := g.Adults + g.Children
	if g.InfantsUseBed {
		beds += g.Infants
	}
	return beds
}

// TotalGuests returns the full head count, infants included
func (g GuestNeed) TotalGuests() int {
	return g.Adults + g.Children + g.Infants
}
