package cli

import "artist-portfolio/internal/domain/comments"

func commentFor(artworkID string) comments.Comment {
	return comments.Comment{
		ArtworkID:   artworkID,
		UserName:    "Grace",
		UserEmail:   "grace@example.com",
		CommentText: "The colours of the stalls are wonderful",
		Rating:      4,
	}
}
