package models

// Business is a Yelp business as the dashboard knows it, with the hours
// block needed to compute its open state.
type Business struct {
	ID       string           `json:"business_id"`
	Name     string           `json:"name"`
	TimeZone string           `json:"time_zone,omitempty"`
	Open     []WeeklyInterval `json:"open,omitempty"`
}
