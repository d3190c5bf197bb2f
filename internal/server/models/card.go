package models

// Card is a dashboard card owned by a single user.
type Card struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}
