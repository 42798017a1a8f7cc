package utils

import "strings"

// DefaultBike is used when a request does not name a bike.
const DefaultBike = "bike-one"

type Bike struct {
	Slug     string
	Name     string
	Location string
}

var bikes = []Bike{
	{Slug: "bike-one", Name: "beige city bike", Location: "123 Main Street, Stanford, CA 94305"},
	{Slug: "bike-two", Name: "blue mountain bike", Location: "456 University Avenue, Palo Alto, CA 94301"},
	{Slug: "bike-three", Name: "grey city bike", Location: "789 Campus Drive, Stanford, CA 94305"},
}

var bikeAliases = map[string]string{
	"1": "bike-one",
	"2": "bike-two",
	"3": "bike-three",
}

// NormalizeBike lowercases a bike slug and falls back to DefaultBike when empty.
// Unknown slugs are returned as-is.
func NormalizeBike(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return DefaultBike
	}
	return slug
}

// LookupBike resolves a slug or numeric alias to a catalog entry.
func LookupBike(slug string) (Bike, bool) {
	key := strings.ToLower(strings.TrimSpace(slug))
	if alias, ok := bikeAliases[key]; ok {
		key = alias
	}
	for _, b := range bikes {
		if b.Slug == key {
			return b, true
		}
	}
	return Bike{}, false
}

// BikeNameAndLocation never fails; unknown bikes keep their slug and get a placeholder location.
func BikeNameAndLocation(slug string) (string, string) {
	if b, ok := LookupBike(slug); ok {
		return b.Name, b.Location
	}
	return slug, "Location TBD"
}

func Bikes() []Bike {
	out := make([]Bike, len(bikes))
	copy(out, bikes)
	return out
}
