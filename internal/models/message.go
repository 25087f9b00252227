package models

// Message is a directed piece of content from one user to another.
type Message struct {
	BaseModel
	SenderID   uint   `gorm:"not null;index:idx_messages_sender_created" json:"senderId"`
	ReceiverID uint   `gorm:"not null;index:idx_messages_receiver_created" json:"receiverId"`
	Content    string `gorm:"type:text;not null" json:"content"`

	// Seen flips to true in bulk when the receiver views the conversation.
	// One-directional; there is no way to mark a message unseen again.
	Seen bool `gorm:"default:false;not null" json:"seen"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

// TableName specifies the table name for the Message model.
func (Message) TableName() string {
	return "messages"
}

// ConversationSummary is one folded entry of a user's conversation list:
// the counterpart, the most recent message exchanged with them, and how many
// of their messages the caller has not seen yet.
type ConversationSummary struct {
	Partner     *UserBasicInfo `json:"partner"`
	LastMessage *Message       `json:"lastMessage"`
	UnreadCount int            `json:"unreadCount"`
}
