package models

// Standing is a row of the standings table. LivePoints include results entered in the
// round that is still in progress.
type Standing struct {
	Rank       int     `json:"rank"`
	Player     Player  `json:"player"`
	LivePoints float64 `json:"live_points"`
}
