package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// PaymentType is a payment channel ("Paystack" is seeded at startup).
type PaymentType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:128;not null" json:"name"`
}

// Payment correlates a local bill payment with the gateway transaction via
// the unique PaymentReference. Status only moves through explicit updates.
type Payment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	BillID           uint      `gorm:"not null;index" json:"-"`
	PayerID          uint      `gorm:"not null;index" json:"-"`
	PaymentTypeID    uint      `gorm:"not null" json:"-"`
	PaymentReference string    `gorm:"size:128;not null;uniqueIndex" json:"paymentReference"`
	Status           string    `gorm:"size:16;not null" json:"status"`
	PaymentNote      string    `gorm:"size:128" json:"paymentNote,omitempty"`
	Amount           Money     `gorm:"type:numeric(10,2);not null" json:"amount"`

	Bill  Bill           `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE;" json:"-"`
	Payer StudentDetails `gorm:"foreignKey:PayerID;constraint:OnDelete:CASCADE;" json:"-"`
	Type  PaymentType    `gorm:"foreignKey:PaymentTypeID;constraint:OnDelete:CASCADE;" json:"-"`
}

// Receipt is written once a payment is confirmed paid.
type Receipt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	PaymentID uint      `gorm:"not null;uniqueIndex" json:"-"`
	PayeeID   uint      `gorm:"not null" json:"-"`
	ReceiptID string    `gorm:"size:128;not null;uniqueIndex" json:"receiptId"`

	Payment Payment        `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE;" json:"-"`
	Payee   StudentDetails `gorm:"foreignKey:PayeeID;constraint:OnDelete:CASCADE;" json:"-"`
}

// Refund records money returned against a payment. PayeeID points at the
// user account rather than the student details row.
type Refund struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	PaymentID uint      `gorm:"not null;index" json:"-"`
	PayeeID   uint      `gorm:"not null" json:"-"`
	Amount    Money     `gorm:"type:numeric(10,2);not null" json:"amount"`
	Reason    string    `gorm:"size:128;not null" json:"reason"`

	Payment Payment `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE;" json:"-"`
	Payee   User    `gorm:"foreignKey:PayeeID;constraint:OnDelete:CASCADE;" json:"-"`
}
