package shared

import "time"

// RecordHeader carries the persistence bookkeeping shared by every entity.
// Entities embed it by value; there is no behavioral polymorphism across
// entity kinds.
type RecordHeader struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
