package models

import "time"

// WaitlistEntry is one email signup; emails are unique across the table.
type WaitlistEntry struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email     string    `gorm:"column:email;not null;uniqueIndex:waitlist_email_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (WaitlistEntry) TableName() string { return "waitlist" }

// All lists every persisted model, in dependency order, for schema bootstrapping.
func All() []any {
	return []any{&Product{}, &Order{}, &OrderItem{}, &WaitlistEntry{}}
}
