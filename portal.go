package main

import (
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"time"

	"edufin/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// resolveStudent loads the authenticated student behind the request.
func (a *app) resolveStudent(c *gin.Context) (models.User, bool) {
	p, exists := currentPrincipal(c)
	if !exists {
		forbidden(c, "Forbidden resource: No principal")
		return models.User{}, false
	}
	var user models.User
	err := a.db.Preload("StudentDetails").
		Where("email = ? AND role = ?", p.Email, models.RoleStudent).First(&user).Error
	if err != nil || user.StudentDetails == nil {
		fail(c, "Student account not found")
		return models.User{}, false
	}
	return user, true
}

// latestApprovedApplication picks the most recently created approved
// application. Aid status is always derived from this, never stored.
func latestApprovedApplication(apps []models.FinancialAidApplication) *models.FinancialAidApplication {
	var latest *models.FinancialAidApplication
	for i := range apps {
		if apps[i].Status != models.AidApproved {
			continue
		}
		if latest == nil || apps[i].CreatedAt.After(latest.CreatedAt) {
			latest = &apps[i]
		}
	}
	return latest
}

type aidDiscountInfo struct {
	BillTypeID   uint         `json:"billTypeId"`
	BillTypeName string       `json:"billTypeName"`
	Amount       models.Money `json:"amount"`
}

type aidInfo struct {
	HasFinancialAid bool              `json:"hasFinancialAid"`
	TypeName        string            `json:"typeName,omitempty"`
	StartDate       *time.Time        `json:"startDate,omitempty"`
	EndDate         *time.Time        `json:"endDate,omitempty"`
	Discounts       []aidDiscountInfo `json:"discounts,omitempty"`
}

// deriveAidInfo joins the granted aid type's discounts live, so a discount
// edited after approval is reflected immediately.
func (a *app) deriveAidInfo(studentDetailsID uint) (aidInfo, error) {
	var apps []models.FinancialAidApplication
	err := a.db.Where("applicant_id = ?", studentDetailsID).Find(&apps).Error
	if err != nil {
		return aidInfo{}, err
	}

	approved := latestApprovedApplication(apps)
	if approved == nil || approved.TypeID == nil {
		return aidInfo{HasFinancialAid: false}, nil
	}

	var aidType models.FinancialAidType
	if err := a.db.First(&aidType, *approved.TypeID).Error; err != nil {
		return aidInfo{}, err
	}

	var discounts []models.FinancialAidDiscount
	err = a.db.Preload("BillType").
		Where("financial_aid_type_id = ?", aidType.ID).Find(&discounts).Error
	if err != nil {
		return aidInfo{}, err
	}

	info := aidInfo{
		HasFinancialAid: true,
		TypeName:        aidType.Name,
		StartDate:       approved.StartDate,
		EndDate:         approved.EndDate,
	}
	for _, d := range discounts {
		info.Discounts = append(info.Discounts, aidDiscountInfo{
			BillTypeID:   d.BillTypeID,
			BillTypeName: d.BillType.Name,
			Amount:       d.Amount,
		})
	}
	return info, nil
}

func (a *app) studentProfileHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}
	details := user.StudentDetails

	info, err := a.deriveAidInfo(details.ID)
	if err != nil {
		log.Printf("student %d: deriving aid info: %v", user.ID, err)
		fail(c, "Could not load profile")
		return
	}

	resp := gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"details": details,
	}
	if prog, err := a.studentProgramme(details.ID); err == nil {
		resp["programmeId"] = prog.ID
		resp["programmeName"] = prog.Name
	}
	if info.HasFinancialAid {
		resp["financialAidInfo"] = info
	} else {
		resp["financialAidInfo"] = nil
	}
	ok(c, "Profile retrieved", resp)
}

type studentBillResponse struct {
	billResponse
	Payments  []paymentResponse `json:"payments"`
	Discounts []aidDiscountInfo `json:"discounts"`
}

func (a *app) studentBillsHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}
	details := user.StudentDetails

	var bills []models.Bill
	err := a.db.Preload("BillType").
		Joins("JOIN bills_to_payees ON bills_to_payees.bill_id = bills.id").
		Where("bills_to_payees.payee_id = ?", details.ID).
		Order("bills.id").Find(&bills).Error
	if err != nil {
		log.Printf("student %d: loading bills: %v", user.ID, err)
		fail(c, "Could not load bills")
		return
	}

	info, err := a.deriveAidInfo(details.ID)
	if err != nil {
		log.Printf("student %d: deriving aid info: %v", user.ID, err)
		fail(c, "Could not load bills")
		return
	}

	out := make([]studentBillResponse, 0, len(bills))
	for _, bill := range bills {
		item := studentBillResponse{billResponse: a.billToResponse(bill)}

		var payments []models.Payment
		err := a.db.Preload("Bill").Preload("Payer").Preload("Type").
			Where("bill_id = ? AND payer_id = ?", bill.ID, details.ID).
			Order("id desc").Find(&payments).Error
		if err != nil {
			log.Printf("student %d: loading payments for bill %d: %v", user.ID, bill.ID, err)
			fail(c, "Could not load bills")
			return
		}
		for _, p := range payments {
			item.Payments = append(item.Payments, paymentToResponse(p))
		}

		for _, d := range info.Discounts {
			if d.BillTypeID == bill.BillTypeID {
				item.Discounts = append(item.Discounts, d)
			}
		}
		out = append(out, item)
	}
	ok(c, "Bills retrieved", out)
}

func (a *app) studentPaymentsHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}

	var payments []models.Payment
	err := a.db.Preload("Bill").Preload("Payer").Preload("Type").
		Where("payer_id = ?", user.StudentDetails.ID).
		Order("id desc").Find(&payments).Error
	if err != nil {
		log.Printf("student %d: loading payments: %v", user.ID, err)
		fail(c, "Could not load payments")
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentToResponse(p))
	}
	ok(c, "Payments retrieved", out)
}

func (a *app) studentPaymentHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}
	reference := c.Param("reference")

	var payment models.Payment
	err := a.db.Preload("Bill").Preload("Payer").Preload("Type").
		Where("payment_reference = ? AND payer_id = ?", reference, user.StudentDetails.ID).
		First(&payment).Error
	if err != nil {
		fail(c, "Payment not found")
		return
	}
	ok(c, "Payment retrieved", paymentToResponse(payment))
}

func (a *app) studentApplicationsHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}

	var apps []models.FinancialAidApplication
	err := a.db.Preload("Applicant").Preload("Type").
		Where("applicant_id = ?", user.StudentDetails.ID).
		Order("created_at desc").Find(&apps).Error
	if err != nil {
		log.Printf("student %d: loading applications: %v", user.ID, err)
		fail(c, "Could not load applications")
		return
	}
	out := make([]aidApplicationResponse, 0, len(apps))
	for _, appl := range apps {
		out = append(out, a.aidApplicationToResponse(appl))
	}
	ok(c, "Applications retrieved", out)
}

func (a *app) studentAidInfoHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}
	info, err := a.deriveAidInfo(user.StudentDetails.ID)
	if err != nil {
		log.Printf("student %d: deriving aid info: %v", user.ID, err)
		fail(c, "Could not load financial aid info")
		return
	}
	ok(c, "Financial aid info retrieved", info)
}

// studentApplyForAidHandler takes a multipart form with the three supporting
// documents. Files land under the configured upload base; the stored URLs
// point at them. A fresh application always starts pending.
func (a *app) studentApplyForAidHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}

	income, err := strconv.ParseInt(c.PostForm("householdIncome"), 10, 64)
	if err != nil || income < 0 {
		fail(c, "householdIncome must be a non-negative amount in minor units")
		return
	}
	previousAid := c.PostForm("hasReceivedPreviousFinancialAid") == "true"

	bankStatement, err := c.FormFile("bankStatement")
	if err != nil {
		fail(c, "bankStatement file is required")
		return
	}
	coverLetter, err := c.FormFile("coverLetter")
	if err != nil {
		fail(c, "coverLetter file is required")
		return
	}
	recommendation, err := c.FormFile("recommendationLetter")
	if err != nil {
		fail(c, "recommendationLetter file is required")
		return
	}

	bankURL, err := a.storeUpload(c, bankStatement)
	if err != nil {
		log.Printf("student %d: storing bank statement: %v", user.ID, err)
		fail(c, "Could not submit application")
		return
	}
	coverURL, err := a.storeUpload(c, coverLetter)
	if err != nil {
		log.Printf("student %d: storing cover letter: %v", user.ID, err)
		fail(c, "Could not submit application")
		return
	}
	recURL, err := a.storeUpload(c, recommendation)
	if err != nil {
		log.Printf("student %d: storing recommendation letter: %v", user.ID, err)
		fail(c, "Could not submit application")
		return
	}

	appl := models.FinancialAidApplication{
		ApplicantID:                     user.StudentDetails.ID,
		Status:                          models.AidPending,
		HouseholdIncome:                 models.MoneyFromMinor(income),
		HasReceivedPreviousFinancialAid: previousAid,
		BankStatementURL:                bankURL,
		CoverLetterURL:                  coverURL,
		LetterOfRecommendationURL:       recURL,
	}
	if err := a.db.Create(&appl).Error; err != nil {
		log.Printf("student %d: submitting aid application: %v", user.ID, err)
		fail(c, "Could not submit application")
		return
	}
	appl.Applicant = *user.StudentDetails
	ok(c, "Application submitted", a.aidApplicationToResponse(appl))
}

// storeUpload saves a multipart file under the upload base with a fresh name.
func (a *app) storeUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(a.cfg.UploadBase, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return fmt.Sprintf("/%s/%s", a.cfg.UploadBase, name), nil
}
