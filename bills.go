package main

import (
	"log"
	"time"

	"edufin/models"
	"edufin/pkg/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createBillRequest struct {
	Name                 string    `json:"name" binding:"required"`
	Amount               int64     `json:"amount" binding:"required,gt=0"` // minor units
	DueDate              time.Time `json:"dueDate" binding:"required"`
	InstallmentSupported bool      `json:"installmentSupported"`
	MaxInstallments      int       `json:"maxInstallments"`
	BillTypeID           uint      `json:"billTypeId" binding:"required"`
}

type billResponse struct {
	ID                   uint         `json:"id"`
	Name                 string       `json:"name"`
	AmountDue            models.Money `json:"amountDue"`
	DueDate              time.Time    `json:"dueDate"`
	InstallmentSupported bool         `json:"installmentSupported"`
	MaxInstallments      int          `json:"maxInstallments"`
	BillTypeID           uint         `json:"billTypeId"`
	BillTypeName         string       `json:"billTypeName"`
	PayeeCount           int64        `json:"payeeCount"`
}

func (a *app) billToResponse(bill models.Bill) billResponse {
	var payees int64
	a.db.Model(&models.BillPayee{}).Where("bill_id = ?", bill.ID).Count(&payees)
	return billResponse{
		ID:                   bill.ID,
		Name:                 bill.Name,
		AmountDue:            bill.AmountDue,
		DueDate:              bill.DueDate,
		InstallmentSupported: bill.InstallmentSupported,
		MaxInstallments:      bill.MaxInstallments,
		BillTypeID:           bill.BillTypeID,
		BillTypeName:         bill.BillType.Name,
		PayeeCount:           payees,
	}
}

// createBillHandler issues a bill against a bill type and fans it out to the
// programme's enrolled students. The bill and all payee rows commit in one
// transaction; the notification emails go out afterwards, sequentially and
// best-effort. Every call issues a new bill, there is no dedup on name or
// amount.
func (a *app) createBillHandler(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var billType models.BillType
	if err := a.db.Preload("Programme").First(&billType, req.BillTypeID).Error; err != nil {
		fail(c, "Bill type not found")
		return
	}

	var payees []models.StudentDetails
	err := a.db.Joins("JOIN students_to_programmes ON students_to_programmes.student_id = student_details.id").
		Where("students_to_programmes.programme_id = ?", billType.ProgrammeID).
		Find(&payees).Error
	if err != nil {
		log.Printf("create bill %q: loading payees: %v", req.Name, err)
		fail(c, "Could not create bill")
		return
	}

	bill := models.Bill{
		Name:                 req.Name,
		AmountDue:            models.MoneyFromMinor(req.Amount),
		DueDate:              req.DueDate,
		InstallmentSupported: req.InstallmentSupported,
		MaxInstallments:      req.MaxInstallments,
		BillTypeID:           billType.ID,
		BillType:             billType,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}
		for _, payee := range payees {
			if err := tx.Create(&models.BillPayee{BillID: bill.ID, PayeeID: payee.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("create bill %q: %v", req.Name, err)
		fail(c, "Could not create bill")
		return
	}

	for _, payee := range payees {
		var user models.User
		if err := a.db.First(&user, payee.UserID).Error; err != nil {
			log.Printf("bill %d: resolving payee %d: %v", bill.ID, payee.ID, err)
			continue
		}
		if err := a.mailer.Send(mailer.Message{
			To:      user.Email,
			Subject: "New Bill",
			HTML:    mailer.NewBillEmail(payee.FirstName, bill.DueDate),
		}); err != nil {
			log.Printf("bill %d: emailing %s: %v", bill.ID, user.Email, err)
		}
	}

	ok(c, "Bill created", a.billToResponse(bill))
}

func (a *app) listBillsHandler(c *gin.Context) {
	var bills []models.Bill
	if err := a.db.Preload("BillType").Order("id").Find(&bills).Error; err != nil {
		log.Printf("list bills: %v", err)
		fail(c, "Could not list bills")
		return
	}
	out := make([]billResponse, 0, len(bills))
	for _, bill := range bills {
		out = append(out, a.billToResponse(bill))
	}
	ok(c, "Bills retrieved", out)
}

func (a *app) getBillHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var bill models.Bill
	if err := a.db.Preload("BillType").First(&bill, id).Error; err != nil {
		fail(c, "Bill not found")
		return
	}
	ok(c, "Bill retrieved", a.billToResponse(bill))
}

type updateBillRequest struct {
	Name                 *string    `json:"name"`
	Amount               *int64     `json:"amount"` // minor units
	DueDate              *time.Time `json:"dueDate"`
	InstallmentSupported *bool      `json:"installmentSupported"`
	MaxInstallments      *int       `json:"maxInstallments"`
}

func (a *app) updateBillHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var bill models.Bill
	if err := a.db.Preload("BillType").First(&bill, id).Error; err != nil {
		fail(c, "Bill not found")
		return
	}
	if req.Name != nil {
		bill.Name = *req.Name
	}
	if req.Amount != nil {
		bill.AmountDue = models.MoneyFromMinor(*req.Amount)
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}
	if req.InstallmentSupported != nil {
		bill.InstallmentSupported = *req.InstallmentSupported
	}
	if req.MaxInstallments != nil {
		bill.MaxInstallments = *req.MaxInstallments
	}
	if err := a.db.Save(&bill).Error; err != nil {
		log.Printf("update bill %d: %v", id, err)
		fail(c, "Could not update bill")
		return
	}
	ok(c, "Bill updated", a.billToResponse(bill))
}

func (a *app) deleteBillHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.Bill{}, id)
	if res.Error != nil {
		log.Printf("delete bill %d: %v", id, res.Error)
		fail(c, "Could not delete bill")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Bill not found")
		return
	}
	ok(c, "Bill deleted", nil)
}
