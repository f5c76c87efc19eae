package works

import "time"

type Category struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultCategories are seeded on an empty database.
var DefaultCategories = []string{
	"Landscape",
	"Portrait",
	"Still Life",
	"Religious",
	"Abstract",
	"Cultural Heritage",
}
