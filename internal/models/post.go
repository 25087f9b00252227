package models

// Post is a piece of content owned by exactly one user.
type Post struct {
	BaseModel
	UserID  uint   `gorm:"not null;index:idx_posts_user_created" json:"userId"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Media is an optional URL reference to an attached image or video.
	Media      string `gorm:"type:varchar(255)" json:"media,omitempty"`
	LikesCount int    `gorm:"default:0" json:"likesCount"`

	Author User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for the Post model.
func (Post) TableName() string {
	return "posts"
}

// PostWithAuthor pairs a post with its resolved author for timeline responses.
type PostWithAuthor struct {
	Post
	Author *UserBasicInfo `json:"author"`
}
