package models

// Listing is a rentable place. Owner is the id of the user who created it.
type Listing struct {
	ID          int      `json:"id"`
	Owner       int      `json:"owner"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"photos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     float64  `json:"checkIn"`
	CheckOut    float64  `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       float64  `json:"price"`
}

// ListingPatch carries the fields of a listing update. Nil fields are left unchanged.
type ListingPatch struct {
	Title       *string
	Address     *string
	Photos      []string
	Description *string
	Perks       []string
	ExtraInfo   *string
	CheckIn     *float64
	CheckOut    *float64
	MaxGuests   *int
	Price       *float64
}

// Apply merges the non-nil fields of p into l.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.Photos != nil {
		l.Photos = append([]string(nil), p.Photos...)
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Perks != nil {
		l.Perks = UniquePerks(p.Perks)
	}
	if p.ExtraInfo != nil {
		l.ExtraInfo = *p.ExtraInfo
	}
	if p.CheckIn != nil {
		l.CheckIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		l.CheckOut = *p.CheckOut
	}
	if p.MaxGuests != nil {
		l.MaxGuests = *p.MaxGuests
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
}

// UniquePerks drops duplicate and empty perks, keeping first-seen order.
func UniquePerks(perks []string) []string {
	seen := make(map[string]bool, len(perks))
	out := make([]string, 0, len(perks))
	for _, p := range perks {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
