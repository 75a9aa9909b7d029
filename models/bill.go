package models

import "time"

// BillType groups bills under a programme. The programme FK is RESTRICT so a
// programme cannot be deleted while bill types reference it.
type BillType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	ProgrammeID uint      `gorm:"not null;index" json:"programmeId"`

	Programme Programme              `gorm:"foreignKey:ProgrammeID;constraint:OnDelete:RESTRICT;" json:"-"`
	Bills     []Bill                 `gorm:"foreignKey:BillTypeID" json:"-"`
	Discounts []FinancialAidDiscount `gorm:"foreignKey:BillTypeID" json:"-"`
}

// Bill is a fixed monetary obligation issued against a bill type and fanned
// out to the programme's enrolled students via BillPayee rows.
type Bill struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	CreatedAt            time.Time `json:"-"`
	UpdatedAt            time.Time `json:"-"`
	Name                 string    `gorm:"size:128;not null" json:"name"`
	AmountDue            Money     `gorm:"type:numeric(10,2);not null" json:"amountDue"`
	DueDate              time.Time `gorm:"not null" json:"dueDate"`
	InstallmentSupported bool      `gorm:"not null" json:"installmentSupported"`
	MaxInstallments      int       `gorm:"not null" json:"maxInstallments"`
	BillTypeID           uint      `gorm:"not null;index" json:"-"`

	BillType BillType  `gorm:"foreignKey:BillTypeID;constraint:OnDelete:RESTRICT;" json:"-"`
	Payments []Payment `gorm:"foreignKey:BillID" json:"-"`
}

// BillPayee assigns a bill to one student. Deleting the bill cascades;
// the student side is RESTRICT, mirroring the issued-obligation semantics.
type BillPayee struct {
	BillID  uint `gorm:"primaryKey;column:bill_id"`
	PayeeID uint `gorm:"primaryKey;column:payee_id"`

	Bill  Bill           `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE;"`
	Payee StudentDetails `gorm:"foreignKey:PayeeID;references:ID;constraint:OnDelete:RESTRICT;"`
}

func (BillPayee) TableName() string { return "bills_to_payees" }
