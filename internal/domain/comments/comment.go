package comments

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Comment struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ArtworkID   string    `gorm:"type:uuid;not null;index" json:"artwork_id"`
	UserName    string    `gorm:"not null" json:"user_name"`
	UserEmail   string    `gorm:"not null" json:"user_email"`
	CommentText string    `gorm:"type:text;not null" json:"comment_text"`
	Rating      int       `gorm:"not null;default:5" json:"rating"`
	IsApproved  bool      `gorm:"not null;default:false;index" json:"is_approved"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (Comment) TableName() string { return "artwork_comments" }

// CommentPatch only carries approval; moderation never edits the text.
type CommentPatch struct {
	IsApproved *bool `json:"is_approved,omitempty"`
}

// Filter selects a partition of the moderation queue.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterPending  Filter = "pending"
	FilterApproved Filter = "approved"
)

func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAll, FilterPending, FilterApproved:
		return Filter(s), true
	case "":
		return FilterAll, true
	}
	return "", false
}

func (f Filter) Match(c Comment) bool {
	switch f {
	case FilterPending:
		return !c.IsApproved
	case FilterApproved:
		return c.IsApproved
	default:
		return true
	}
}
