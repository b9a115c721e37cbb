package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like marks that a user has liked a post. A post holds at most one
// like per user.
type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is a comment embedded in a post, newest first.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Date   time.Time          `bson:"date" json:"date"`
}

// Post is a single post document with its likes and comments embedded.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

// LikedBy reports whether the given user has liked the post.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, like := range p.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}
