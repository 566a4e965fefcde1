package entities

import "time"

type ActivityAction string

const (
	ActivityRegister        ActivityAction = "register"
	ActivityLogin           ActivityAction = "login"
	ActivityExchangeRequest ActivityAction = "exchange_request"
	ActivityExchangeAccept  ActivityAction = "exchange_accept"
)

type ActivityEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	Action      ActivityAction `gorm:"index;size:50" json:"action"`
	ExchangeID  *uint          `gorm:"index" json:"exchange_id,omitempty"`
	Description string         `gorm:"size:500" json:"description"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}
