package main

import (
	"log"

	"edufin/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createProgrammeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *app) createProgrammeHandler(c *gin.Context) {
	var req createProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	code, err := randomCode(8)
	if err != nil {
		fail(c, "Could not create programme")
		return
	}
	programme := models.Programme{ProgrammeID: code, Name: req.Name}
	if err := a.db.Create(&programme).Error; err != nil {
		log.Printf("create programme %q: %v", req.Name, err)
		fail(c, "Could not create programme")
		return
	}
	ok(c, "Programme created", programme)
}

func (a *app) listProgrammesHandler(c *gin.Context) {
	var programmes []models.Programme
	if err := a.db.Order("id").Find(&programmes).Error; err != nil {
		log.Printf("list programmes: %v", err)
		fail(c, "Could not list programmes")
		return
	}
	ok(c, "Programmes retrieved", programmes)
}

func (a *app) getProgrammeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var programme models.Programme
	if err := a.db.First(&programme, id).Error; err != nil {
		fail(c, "Programme not found")
		return
	}
	ok(c, "Programme retrieved", programme)
}

type updateProgrammeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *app) updateProgrammeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var programme models.Programme
	if err := a.db.First(&programme, id).Error; err != nil {
		fail(c, "Programme not found")
		return
	}
	programme.Name = req.Name
	if err := a.db.Save(&programme).Error; err != nil {
		log.Printf("update programme %d: %v", id, err)
		fail(c, "Could not update programme")
		return
	}
	ok(c, "Programme updated", programme)
}

// deleteProgrammeHandler relies on the RESTRICT constraint from bill types;
// the delete fails while fee structures still reference the programme.
func (a *app) deleteProgrammeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.Programme{}, id)
	if res.Error != nil {
		log.Printf("delete programme %d: %v", id, res.Error)
		fail(c, "Could not delete programme; remove its bill types and enrollments first")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Programme not found")
		return
	}
	ok(c, "Programme deleted", nil)
}

func (a *app) enrollStudentHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	studentID, okID := paramID(c, "studentId")
	if !okID {
		return
	}

	var programme models.Programme
	if err := a.db.First(&programme, id).Error; err != nil {
		fail(c, "Programme not found")
		return
	}
	var details models.StudentDetails
	if err := a.db.Where("user_id = ?", studentID).First(&details).Error; err != nil {
		fail(c, "Student not found")
		return
	}

	var cnt int64
	a.db.Model(&models.StudentProgramme{}).
		Where("student_id = ? AND programme_id = ?", details.ID, programme.ID).Count(&cnt)
	if cnt > 0 {
		fail(c, "Student is already enrolled in this programme")
		return
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		return enrollInProgramme(tx, details.ID, programme.ID)
	})
	if err != nil {
		log.Printf("enroll student %d in programme %d: %v", studentID, id, err)
		fail(c, "Could not enroll student")
		return
	}
	ok(c, "Student enrolled", nil)
}

// unenrollStudentHandler removes the enrollment link only. Bills already
// issued to the student stay issued.
func (a *app) unenrollStudentHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	studentID, okID := paramID(c, "studentId")
	if !okID {
		return
	}

	var details models.StudentDetails
	if err := a.db.Where("user_id = ?", studentID).First(&details).Error; err != nil {
		fail(c, "Student not found")
		return
	}

	res := a.db.Where("student_id = ? AND programme_id = ?", details.ID, id).
		Delete(&models.StudentProgramme{})
	if res.Error != nil {
		log.Printf("unenroll student %d from programme %d: %v", studentID, id, res.Error)
		fail(c, "Could not unenroll student")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Student is not enrolled in this programme")
		return
	}
	ok(c, "Student unenrolled", nil)
}
