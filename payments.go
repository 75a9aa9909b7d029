package main

import (
	"log"
	"time"

	"edufin/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type paymentResponse struct {
	ID               uint         `json:"id"`
	PaymentReference string       `json:"paymentReference"`
	Status           string       `json:"status"`
	PaymentNote      string       `json:"paymentNote,omitempty"`
	Amount           models.Money `json:"amount"`
	BillName         string       `json:"billName"`
	PayerName        string       `json:"payerName"`
	PaymentTypeName  string       `json:"paymentTypeName"`
	CreatedAt        time.Time    `json:"createdAt"`
}

func paymentToResponse(p models.Payment) paymentResponse {
	return paymentResponse{
		ID:               p.ID,
		PaymentReference: p.PaymentReference,
		Status:           p.Status,
		PaymentNote:      p.PaymentNote,
		Amount:           p.Amount,
		BillName:         p.Bill.Name,
		PayerName:        p.Payer.FullName(),
		PaymentTypeName:  p.Type.Name,
		CreatedAt:        p.CreatedAt,
	}
}

func (a *app) listPaymentsHandler(c *gin.Context) {
	var payments []models.Payment
	err := a.db.Preload("Bill").Preload("Payer").Preload("Type").
		Order("id desc").Find(&payments).Error
	if err != nil {
		log.Printf("list payments: %v", err)
		fail(c, "Could not list payments")
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentToResponse(p))
	}
	ok(c, "Payments retrieved", out)
}

func (a *app) getPaymentHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var payment models.Payment
	err := a.db.Preload("Bill").Preload("Payer").Preload("Type").First(&payment, id).Error
	if err != nil {
		fail(c, "Payment not found")
		return
	}
	ok(c, "Payment retrieved", paymentToResponse(payment))
}

type updatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid failed refunded"`
	Note   string `json:"note"`
}

func (a *app) updatePaymentStatusHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var payment models.Payment
	if err := a.db.First(&payment, id).Error; err != nil {
		fail(c, "Payment not found")
		return
	}

	payment.Status = req.Status
	payment.PaymentNote = req.Note
	err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		if payment.Status == models.PaymentPaid {
			return writeReceipt(tx, payment)
		}
		return nil
	})
	if err != nil {
		log.Printf("update payment %d status: %v", id, err)
		fail(c, "Could not update payment")
		return
	}

	a.db.Preload("Bill").Preload("Payer").Preload("Type").First(&payment, id)
	ok(c, "Payment updated", paymentToResponse(payment))
}

type refundPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// refundPaymentHandler records a refund row for the full payment amount and
// moves the payment to refunded. Money actually leaving the gateway happens
// outside this system.
func (a *app) refundPaymentHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req refundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var payment models.Payment
	if err := a.db.Preload("Payer").First(&payment, id).Error; err != nil {
		fail(c, "Payment not found")
		return
	}
	if payment.Status != models.PaymentPaid {
		fail(c, "Only paid payments can be refunded")
		return
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		refund := models.Refund{
			PaymentID: payment.ID,
			PayeeID:   payment.Payer.UserID,
			Amount:    payment.Amount,
			Reason:    req.Reason,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}
		return tx.Model(&payment).Update("status", models.PaymentRefunded).Error
	})
	if err != nil {
		log.Printf("refund payment %d: %v", id, err)
		fail(c, "Could not refund payment")
		return
	}

	a.db.Preload("Bill").Preload("Payer").Preload("Type").First(&payment, id)
	ok(c, "Payment refunded", paymentToResponse(payment))
}

// writeReceipt issues the receipt for a paid payment. The unique index on
// payment_id makes repeat confirmations a no-op.
func writeReceipt(tx *gorm.DB, payment models.Payment) error {
	var cnt int64
	tx.Model(&models.Receipt{}).Where("payment_id = ?", payment.ID).Count(&cnt)
	if cnt > 0 {
		return nil
	}
	code, err := randomCode(12)
	if err != nil {
		return err
	}
	return tx.Create(&models.Receipt{
		PaymentID: payment.ID,
		PayeeID:   payment.PayerID,
		ReceiptID: code,
	}).Error
}
