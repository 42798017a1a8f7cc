package entities

import "time"

type BookingView struct {
	ID        int64     `json:"id"`
	Bike      string    `json:"bike"`
	Day       string    `json:"day"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingsList struct {
	Total    int           `json:"total"`
	Range    DayRange      `json:"range"`
	Bookings []BookingView `json:"bookings"`
}

type TopBiker struct {
	Email         string `json:"email"`
	FavouriteBike string `json:"favourite_bike"`
	BookingCount  int    `json:"booking_count"`
}

type TopBikersResponse struct {
	TopBikers []TopBiker `json:"topBikers"`
}

type BikeInfo struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
