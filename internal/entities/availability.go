package entities

type MonthAvailability struct {
	Bike       string   `json:"bike"`
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	BookedDays []string `json:"bookedDays"`
}

type DayRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WindowAvailability is the batch view used to pre-populate every bike's calendar at once.
type WindowAvailability struct {
	Range        DayRange            `json:"range"`
	BookedByBike map[string][]string `json:"bookedByBike"`
}
