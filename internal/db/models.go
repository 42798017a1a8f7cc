package db

import "time"

type Booking struct {
	ID        int64
	Bike      string
	Day       string
	Email     string
	CreatedAt time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}

// RiderTotal is one row of the monthly leaderboard.
type RiderTotal struct {
	Email         string
	FavouriteBike string
	BookingCount  int
}
