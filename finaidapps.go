package main

import (
	"log"
	"time"

	"edufin/models"
	"edufin/pkg/mailer"

	"github.com/gin-gonic/gin"
)

type aidApplicationResponse struct {
	ID                              uint         `json:"id"`
	ApplicantName                   string       `json:"applicantName"`
	ApplicantEmail                  string       `json:"applicantEmail"`
	TypeName                        string       `json:"typeName"`
	Status                          string       `json:"status"`
	HouseholdIncome                 models.Money `json:"householdIncome"`
	HasReceivedPreviousFinancialAid bool         `json:"hasReceivedPreviousFinancialAid"`
	BankStatementURL                string       `json:"bankStatementUrl"`
	CoverLetterURL                  string       `json:"coverLetterUrl"`
	LetterOfRecommendationURL       string       `json:"letterOfRecommendationUrl"`
	StartDate                       *time.Time   `json:"startDate"`
	EndDate                         *time.Time   `json:"endDate"`
	CreatedAt                       time.Time    `json:"createdAt"`
}

func (a *app) aidApplicationToResponse(appl models.FinancialAidApplication) aidApplicationResponse {
	resp := aidApplicationResponse{
		ID:                              appl.ID,
		ApplicantName:                   appl.Applicant.FullName(),
		Status:                          appl.Status,
		HouseholdIncome:                 appl.HouseholdIncome,
		HasReceivedPreviousFinancialAid: appl.HasReceivedPreviousFinancialAid,
		BankStatementURL:                appl.BankStatementURL,
		CoverLetterURL:                  appl.CoverLetterURL,
		LetterOfRecommendationURL:       appl.LetterOfRecommendationURL,
		StartDate:                       appl.StartDate,
		EndDate:                         appl.EndDate,
		CreatedAt:                       appl.CreatedAt,
		TypeName:                        "N/A",
	}
	if appl.Type != nil {
		resp.TypeName = appl.Type.Name
	}
	var user models.User
	if err := a.db.First(&user, appl.Applicant.UserID).Error; err == nil {
		resp.ApplicantEmail = user.Email
	}
	return resp
}

func (a *app) listAidApplicationsHandler(c *gin.Context) {
	var apps []models.FinancialAidApplication
	err := a.db.Preload("Applicant").Preload("Type").
		Order("created_at desc").Find(&apps).Error
	if err != nil {
		log.Printf("list aid applications: %v", err)
		fail(c, "Could not list applications")
		return
	}
	out := make([]aidApplicationResponse, 0, len(apps))
	for _, appl := range apps {
		out = append(out, a.aidApplicationToResponse(appl))
	}
	ok(c, "Applications retrieved", out)
}

func (a *app) getAidApplicationHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var appl models.FinancialAidApplication
	err := a.db.Preload("Applicant").Preload("Type").First(&appl, id).Error
	if err != nil {
		fail(c, "Application not found")
		return
	}
	ok(c, "Application retrieved", a.aidApplicationToResponse(appl))
}

type approveAidApplicationRequest struct {
	TypeID    uint      `json:"typeId" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// approveAidApplicationHandler grants an aid type and validity window.
// Already-decided applications can be decided again; the latest verdict
// stands.
func (a *app) approveAidApplicationHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req approveAidApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var appl models.FinancialAidApplication
	if err := a.db.Preload("Applicant").First(&appl, id).Error; err != nil {
		fail(c, "Application not found")
		return
	}
	var aidType models.FinancialAidType
	if err := a.db.First(&aidType, req.TypeID).Error; err != nil {
		fail(c, "Financial aid type not found")
		return
	}

	appl.Status = models.AidApproved
	appl.TypeID = &aidType.ID
	appl.StartDate = &req.StartDate
	appl.EndDate = &req.EndDate
	if err := a.db.Save(&appl).Error; err != nil {
		log.Printf("approve aid application %d: %v", id, err)
		fail(c, "Could not approve application")
		return
	}

	a.sendAidVerdictMail(appl, "approved")
	a.db.Preload("Applicant").Preload("Type").First(&appl, id)
	ok(c, "Application approved", a.aidApplicationToResponse(appl))
}

func (a *app) rejectAidApplicationHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var appl models.FinancialAidApplication
	if err := a.db.Preload("Applicant").First(&appl, id).Error; err != nil {
		fail(c, "Application not found")
		return
	}

	appl.Status = models.AidRejected
	if err := a.db.Save(&appl).Error; err != nil {
		log.Printf("reject aid application %d: %v", id, err)
		fail(c, "Could not reject application")
		return
	}

	a.sendAidVerdictMail(appl, "rejected")
	a.db.Preload("Applicant").Preload("Type").First(&appl, id)
	ok(c, "Application rejected", a.aidApplicationToResponse(appl))
}

func (a *app) deleteAidApplicationHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.FinancialAidApplication{}, id)
	if res.Error != nil {
		log.Printf("delete aid application %d: %v", id, res.Error)
		fail(c, "Could not delete application")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Application not found")
		return
	}
	ok(c, "Application deleted", nil)
}

func (a *app) sendAidVerdictMail(appl models.FinancialAidApplication, verdict string) {
	var user models.User
	if err := a.db.First(&user, appl.Applicant.UserID).Error; err != nil {
		log.Printf("aid application %d: resolving applicant: %v", appl.ID, err)
		return
	}
	if err := a.mailer.Send(mailer.Message{
		To:      user.Email,
		Subject: "Financial Aid Application Update",
		HTML:    mailer.AidVerdictEmail(appl.Applicant.FirstName, verdict),
	}); err != nil {
		log.Printf("aid application %d: emailing %s: %v", appl.ID, user.Email, err)
	}
}
