package models

import "time"

// StudentDetails is the one-to-one profile behind a student User. StudentID
// is the human-facing matriculation code, distinct from the row id.
type StudentDetails struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"-"`
	StudentID   string    `gorm:"size:128;not null;uniqueIndex" json:"studentId"`
	FirstName   string    `gorm:"size:128;not null" json:"firstName"`
	LastName    string    `gorm:"size:128;not null" json:"lastName"`
	MiddleName  string    `gorm:"size:128" json:"middleName,omitempty"`
	Gender      string    `gorm:"size:16;not null" json:"gender"`
	Nationality string    `gorm:"size:128;not null" json:"nationality"`
	DateOfBirth time.Time `gorm:"not null" json:"dateOfBirth"`
	PhoneNumber string    `gorm:"size:128;not null" json:"phoneNumber"`
	Address     string    `gorm:"size:128;not null" json:"address"`
	City        string    `gorm:"size:128;not null" json:"city"`
	State       string    `gorm:"size:128;not null" json:"state"`
	ZipCode     string    `gorm:"size:128;not null" json:"zipCode"`
	Country     string    `gorm:"size:128;not null" json:"country"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (s *StudentDetails) FullName() string {
	return s.FirstName + " " + s.LastName
}
