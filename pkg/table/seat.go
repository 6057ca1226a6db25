package table

import "time"

// Seat is one chair at a table. A nil entry in the table's seat array is
// an empty chair
type Seat struct {
	Index       int       `json:"index"`
	PlayerID    int64     `json:"playerId"`
	DisplayName string    `json:"displayName"`
	Balance     int       `json:"balance"`
	SeatedAt    time.Time `json:"seatedAt"`
}
