package models

import "time"

// Programme is a course of study. ProgrammeID is a generated public code.
type Programme struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	ProgrammeID string `gorm:"size:128;not null;uniqueIndex" json:"programmeId"`
	Name        string `gorm:"size:128;not null" json:"name"`
}

// StudentProgramme is the enrollment join row. Deleting a student cascades;
// deleting a programme is blocked while students are enrolled.
type StudentProgramme struct {
	StudentID   uint `gorm:"primaryKey;column:student_id"`
	ProgrammeID uint `gorm:"primaryKey;column:programme_id"`

	Student   StudentDetails `gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Programme Programme      `gorm:"foreignKey:ProgrammeID;references:ID;constraint:OnDelete:RESTRICT;"`
}

func (StudentProgramme) TableName() string { return "students_to_programmes" }
