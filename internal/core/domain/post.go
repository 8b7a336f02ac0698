package domain

import "time"

// BlogPageSize is the fixed page size of the public blog listing.
const BlogPageSize = 10

// Comment is embedded in a Post in insertion order.
type Comment struct {
	ID        string    `json:"_id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Text      string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Post is the blog aggregate root. Slug never changes after creation.
type Post struct {
	Slug        string    `json:"slug" bson:"slug"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Content     string    `json:"content" bson:"content"`
	Thumbnail   string    `json:"thumbnail" bson:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	EditedAt    time.Time `json:"editedAt" bson:"edited_at"`
	Comments    []Comment `json:"comments" bson:"comments"`
	Likes       []string  `json:"-" bson:"likes"`
}

// LikedBy reports whether userID is in the liker set.
func (p *Post) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// PostSummary is the projection used by listings.
type PostSummary struct {
	Slug        string    `json:"slug" bson:"slug"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description"`
	Thumbnail   string    `json:"thumbnail" bson:"thumbnail"`
	EditedAt    time.Time `json:"editedAt" bson:"edited_at"`
}

// CommentView is a comment joined with its author's display name.
type CommentView struct {
	ID        string    `json:"_id"`
	Comment   string    `json:"comment"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostView is the read model returned for a single post.
type PostView struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	Thumbnail   string        `json:"thumbnail"`
	EditedAt    time.Time     `json:"editedAt"`
	Likes       int           `json:"likes"`
	IsUserLiked bool          `json:"isUserLiked"`
	Comments    []CommentView `json:"comments"`
}
