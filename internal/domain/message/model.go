package message

import "time"

// Message is a chat entry scoped to a unit.
type Message struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID    string    `gorm:"type:uuid;not null;index" json:"unitId"`
	SenderID  string    `gorm:"type:uuid;not null" json:"senderId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
