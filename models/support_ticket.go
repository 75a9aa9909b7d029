package models

import "time"

const (
	TicketPending  = "pending"
	TicketActive   = "active"
	TicketResolved = "resolved"
)

type SupportTicketCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:128;not null" json:"name"`
}

// SupportTicket is raised by a user (inquirer) and optionally assigned to a
// staff handler. The category is RESTRICT, the handler SET NULL.
type SupportTicket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"size:128;not null" json:"description"`
	CategoryID  uint      `gorm:"not null" json:"-"`
	HandlerID   *uint     `json:"-"`
	InquirerID  uint      `gorm:"not null" json:"-"`
	Status      string    `gorm:"size:16;not null" json:"status"`

	Category SupportTicketCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT;" json:"-"`
	Handler  *User                 `gorm:"foreignKey:HandlerID;constraint:OnDelete:SET NULL;" json:"-"`
	Inquirer User                  `gorm:"foreignKey:InquirerID;constraint:OnDelete:CASCADE;" json:"-"`
}
