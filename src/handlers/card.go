package handlers

import (
	"strconv"

	"launderette-finder/src/regions"
	"launderette-finder/src/types"
)

// Card is the view model for one listing. It is a pure function of the
// listing and an optional distance; rendering decisions (badges, premium
// emphasis) happen in the template off these fields alone.
type Card struct {
	types.Listing
	Region   string   `json:"region,omitempty"`
	Distance *float64 `json:"distanceMiles,omitempty"`
}

func NewCard(l types.Listing) Card {
	l.Normalize()
	return Card{Listing: l, Region: regions.RegionForCity(l.City)}
}

func NewCardWithDistance(l types.Listing, miles float64) Card {
	c := NewCard(l)
	c.Distance = &miles
	return c
}

// FormattedDistance returns the distance rounded to one decimal place with
// the unit label, or "" when no distance was supplied.
func (c Card) FormattedDistance() string {
	if c.Distance == nil {
		return ""
	}
	return FormatDistance(*c.Distance)
}

// FormatDistance renders a distance in miles to one decimal place.
func FormatDistance(miles float64) string {
	return strconv.FormatFloat(miles, 'f', 1, 64) + " miles"
}
