package trip

import (
	"errors"
	"time"
)

type Trip struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Waypoints []string  `json:"waypoints"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// Patch carries a partial update. A nil field is left untouched; a non-nil
// empty waypoint list clears the waypoints.
type Patch struct {
	Name      *string  `json:"name"`
	Waypoints []string `json:"waypoints"`
}

var ErrNotFound = errors.New("trip not found")
