package models

// Position is a [latitude, longitude] pair.
type Position [2]float64

func (p Position) Latitude() float64  { return p[0] }
func (p Position) Longitude() float64 { return p[1] }

// Marker is a map marker owned by a single user.
type Marker struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Title    string   `json:"title"`
	Owner    string   `json:"owner"`
}

// MapView is the map screen payload: a fixed viewport plus the user's markers.
type MapView struct {
	Center  Position  `json:"center"`
	Zoom    int       `json:"zoom"`
	Markers []*Marker `json:"markers"`
}
