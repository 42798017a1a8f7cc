package entities

type BookingRequest struct {
	Bike  string `json:"bike"`
	Email string `json:"email"`
	Day   string `json:"day"` // YYYY-MM-DD
}

type BookingResponse struct {
	OK bool `json:"ok"`
}
