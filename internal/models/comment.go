package models

// Comment is content owned by one user and attached to exactly one post.
type Comment struct {
	BaseModel
	PostID  uint   `gorm:"not null;index:idx_comments_post_created" json:"postId"`
	UserID  uint   `gorm:"not null;index" json:"userId"`
	Content string `gorm:"type:text;not null" json:"content"`
}

// TableName specifies the table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}

// CommentWithAuthor pairs a comment with its resolved author.
type CommentWithAuthor struct {
	Comment
	Author *UserBasicInfo `json:"author"`
}
