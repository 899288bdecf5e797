package models

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}
