package models

import "time"

const (
	AidPending  = "pending"
	AidApproved = "approved"
	AidRejected = "rejected"
)

// FinancialAidType names a grant category (e.g. need-based, merit).
type FinancialAidType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:128;not null" json:"name"`
}

// FinancialAidDiscount ties an aid type to a bill type with a fixed amount
// off. Cascades away with either parent.
type FinancialAidDiscount struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
	Name               string    `gorm:"size:128;not null" json:"name"`
	BillTypeID         uint      `gorm:"not null;index" json:"billTypeId"`
	FinancialAidTypeID uint      `gorm:"not null;index" json:"financialAidTypeId"`
	Amount             Money     `gorm:"type:numeric(10,2);not null" json:"amount"`

	BillType         BillType         `gorm:"foreignKey:BillTypeID;constraint:OnDelete:CASCADE;" json:"-"`
	FinancialAidType FinancialAidType `gorm:"foreignKey:FinancialAidTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// FinancialAidApplication starts pending with a null TypeID; approval fills
// in the granted type and validity window, rejection leaves them empty.
type FinancialAidApplication struct {
	ID                              uint       `gorm:"primaryKey" json:"id"`
	CreatedAt                       time.Time  `json:"createdAt"`
	UpdatedAt                       time.Time  `json:"updatedAt"`
	ApplicantID                     uint       `gorm:"not null;index" json:"-"`
	TypeID                          *uint      `json:"-"`
	Status                          string     `gorm:"size:16;not null" json:"status"`
	HouseholdIncome                 Money      `gorm:"type:numeric(10,2);not null" json:"householdIncome"`
	HasReceivedPreviousFinancialAid bool       `gorm:"not null" json:"hasReceivedPreviousFinancialAid"`
	BankStatementURL                string     `gorm:"size:128;not null" json:"bankStatementUrl"`
	CoverLetterURL                  string     `gorm:"size:128;not null" json:"coverLetterUrl"`
	LetterOfRecommendationURL       string     `gorm:"size:128;not null" json:"letterOfRecommendationUrl"`
	StartDate                       *time.Time `json:"startDate"`
	EndDate                         *time.Time `json:"endDate"`

	Applicant StudentDetails    `gorm:"foreignKey:ApplicantID" json:"-"`
	Type      *FinancialAidType `gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT;" json:"-"`
}
