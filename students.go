package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"edufin/models"
	"edufin/pkg/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createStudentRequest struct {
	Email       string    `json:"email" binding:"required,email"`
	StudentID   string    `json:"studentId"`
	FirstName   string    `json:"firstName" binding:"required"`
	LastName    string    `json:"lastName" binding:"required"`
	MiddleName  string    `json:"middleName"`
	Gender      string    `json:"gender" binding:"required"`
	Nationality string    `json:"nationality" binding:"required"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required"`
	PhoneNumber string    `json:"phoneNumber" binding:"required"`
	Address     string    `json:"address" binding:"required"`
	City        string    `json:"city" binding:"required"`
	State       string    `json:"state" binding:"required"`
	ZipCode     string    `json:"zipCode" binding:"required"`
	Country     string    `json:"country" binding:"required"`
	ProgrammeID uint      `json:"programmeId" binding:"required"`
}

type studentResponse struct {
	ID            uint                   `json:"id"`
	Email         string                 `json:"email"`
	Details       *models.StudentDetails `json:"details"`
	ProgrammeID   uint                   `json:"programmeId,omitempty"`
	ProgrammeName string                 `json:"programmeName,omitempty"`
}

func (a *app) createStudentHandler(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var programme models.Programme
	if err := a.db.First(&programme, req.ProgrammeID).Error; err != nil {
		fail(c, "Programme not found")
		return
	}

	password, err := randomPassword()
	if err != nil {
		fail(c, "Could not create student")
		return
	}
	hashed, err := hashPassword(password)
	if err != nil {
		fail(c, "Could not create student")
		return
	}
	studentID := req.StudentID
	if studentID == "" {
		if studentID, err = randomCode(10); err != nil {
			fail(c, "Could not create student")
			return
		}
	}

	user := models.User{
		Email:          req.Email,
		HashedPassword: hashed,
		Role:           models.RoleStudent,
		StudentDetails: &models.StudentDetails{
			StudentID:   studentID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			MiddleName:  req.MiddleName,
			Gender:      req.Gender,
			Nationality: req.Nationality,
			DateOfBirth: req.DateOfBirth,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			ZipCode:     req.ZipCode,
			Country:     req.Country,
		},
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return enrollInProgramme(tx, user.StudentDetails.ID, programme.ID)
	})
	if err != nil {
		log.Printf("create student %s: %v", req.Email, err)
		fail(c, "Could not create student")
		return
	}

	if err := a.mailer.Send(mailer.Message{
		To:      req.Email,
		Subject: "Welcome",
		HTML: mailer.NewUserEmail(req.FirstName, req.LastName, req.Email,
			fmt.Sprintf("%s/login", a.cfg.FEDomain), password),
	}); err != nil {
		log.Printf("create student %s: welcome email: %v", req.Email, err)
	}

	ok(c, "Student created", studentResponse{
		ID:            user.ID,
		Email:         user.Email,
		Details:       user.StudentDetails,
		ProgrammeID:   programme.ID,
		ProgrammeName: programme.Name,
	})
}

// listStudentsHandler supports ?search= over name, student ID and phone and
// ?page=/&pageSize= pagination.
func (a *app) listStudentsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := a.db.Model(&models.User{}).Preload("StudentDetails").
		Where("role = ?", models.RoleStudent)
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Joins("JOIN student_details ON student_details.user_id = users.id").
			Where(`student_details.first_name ILIKE ? OR student_details.last_name ILIKE ?
				OR student_details.student_id ILIKE ? OR student_details.phone_number ILIKE ?`,
				like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("list students: %v", err)
		fail(c, "Could not list students")
		return
	}

	var users []models.User
	err := q.Order("users.id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error
	if err != nil {
		log.Printf("list students: %v", err)
		fail(c, "Could not list students")
		return
	}

	out := make([]studentResponse, 0, len(users))
	for _, u := range users {
		resp := studentResponse{ID: u.ID, Email: u.Email, Details: u.StudentDetails}
		if u.StudentDetails != nil {
			if prog, err := a.studentProgramme(u.StudentDetails.ID); err == nil {
				resp.ProgrammeID = prog.ID
				resp.ProgrammeName = prog.Name
			}
		}
		out = append(out, resp)
	}
	ok(c, "Students retrieved", gin.H{
		"students": out,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (a *app) getStudentHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var user models.User
	err := a.db.Preload("StudentDetails").
		Where("role = ?", models.RoleStudent).First(&user, id).Error
	if err != nil {
		fail(c, "Student not found")
		return
	}
	resp := studentResponse{ID: user.ID, Email: user.Email, Details: user.StudentDetails}
	if user.StudentDetails != nil {
		if prog, err := a.studentProgramme(user.StudentDetails.ID); err == nil {
			resp.ProgrammeID = prog.ID
			resp.ProgrammeName = prog.Name
		}
	}
	ok(c, "Student retrieved", resp)
}

type updateStudentRequest struct {
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	MiddleName  *string    `json:"middleName"`
	Gender      *string    `json:"gender"`
	Nationality *string    `json:"nationality"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	PhoneNumber *string    `json:"phoneNumber"`
	Address     *string    `json:"address"`
	City        *string    `json:"city"`
	State       *string    `json:"state"`
	ZipCode     *string    `json:"zipCode"`
	Country     *string    `json:"country"`
	ProgrammeID *uint      `json:"programmeId"`
}

func (a *app) updateStudentHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var user models.User
	err := a.db.Preload("StudentDetails").
		Where("role = ?", models.RoleStudent).First(&user, id).Error
	if err != nil || user.StudentDetails == nil {
		fail(c, "Student not found")
		return
	}
	details := user.StudentDetails

	err = a.db.Transaction(func(tx *gorm.DB) error {
		apply := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		apply(&details.FirstName, req.FirstName)
		apply(&details.LastName, req.LastName)
		apply(&details.MiddleName, req.MiddleName)
		apply(&details.Gender, req.Gender)
		apply(&details.Nationality, req.Nationality)
		apply(&details.PhoneNumber, req.PhoneNumber)
		apply(&details.Address, req.Address)
		apply(&details.City, req.City)
		apply(&details.State, req.State)
		apply(&details.ZipCode, req.ZipCode)
		apply(&details.Country, req.Country)
		if req.DateOfBirth != nil {
			details.DateOfBirth = *req.DateOfBirth
		}
		if err := tx.Save(details).Error; err != nil {
			return err
		}

		if req.ProgrammeID != nil {
			var programme models.Programme
			if err := tx.First(&programme, *req.ProgrammeID).Error; err != nil {
				return err
			}
			if err := tx.Where("student_id = ?", details.ID).
				Delete(&models.StudentProgramme{}).Error; err != nil {
				return err
			}
			if err := enrollInProgramme(tx, details.ID, programme.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("update student %d: %v", id, err)
		fail(c, "Could not update student")
		return
	}

	resp := studentResponse{ID: user.ID, Email: user.Email, Details: details}
	if prog, err := a.studentProgramme(details.ID); err == nil {
		resp.ProgrammeID = prog.ID
		resp.ProgrammeName = prog.Name
	}
	ok(c, "Student updated", resp)
}

func (a *app) deleteStudentHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Where("role = ?", models.RoleStudent).Delete(&models.User{}, id)
	if res.Error != nil {
		log.Printf("delete student %d: %v", id, res.Error)
		fail(c, "Could not delete student")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Student not found")
		return
	}
	ok(c, "Student deleted", nil)
}

// studentProgramme resolves the programme a student is enrolled in.
func (a *app) studentProgramme(studentDetailsID uint) (models.Programme, error) {
	var link models.StudentProgramme
	err := a.db.Where("student_id = ?", studentDetailsID).First(&link).Error
	if err != nil {
		return models.Programme{}, err
	}
	var programme models.Programme
	if err := a.db.First(&programme, link.ProgrammeID).Error; err != nil {
		return models.Programme{}, err
	}
	return programme, nil
}

// enrollInProgramme links a student to a programme and back-fills payee rows
// for every bill already issued under the programme's bill types, so an
// incoming student owes what classmates owe.
func enrollInProgramme(tx *gorm.DB, studentDetailsID, programmeID uint) error {
	if err := tx.Create(&models.StudentProgramme{
		StudentID:   studentDetailsID,
		ProgrammeID: programmeID,
	}).Error; err != nil {
		return err
	}

	var bills []models.Bill
	err := tx.Joins("JOIN bill_types ON bill_types.id = bills.bill_type_id").
		Where("bill_types.programme_id = ?", programmeID).Find(&bills).Error
	if err != nil {
		return err
	}
	for _, bill := range bills {
		var cnt int64
		tx.Model(&models.BillPayee{}).
			Where("bill_id = ? AND payee_id = ?", bill.ID, studentDetailsID).Count(&cnt)
		if cnt > 0 {
			continue
		}
		if err := tx.Create(&models.BillPayee{BillID: bill.ID, PayeeID: studentDetailsID}).Error; err != nil {
			return err
		}
	}
	return nil
}
