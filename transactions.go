package main

import (
	"io"
	"log"
	"strconv"

	"edufin/models"
	"edufin/pkg/paystack"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// paystackPaymentType is the seeded channel name every gateway payment is
// recorded under; paystackPaymentNote is stamped on the payment as soon as
// checkout starts.
const (
	paystackPaymentType = "Paystack"
	paystackPaymentNote = "Paid with Paystack"
)

type initiateTransactionRequest struct {
	BillID int64  `json:"billId" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Amount int64  `json:"amount" binding:"required,gt=0"` // minor units
}

// initiateTransactionHandler starts a hosted checkout: resolve the bill, the
// payer and the Paystack payment type, create the gateway transaction under
// a fresh reference, then persist the pending payment. Retried initiations
// deliberately create distinct pending payments; reconciliation settles them
// individually.
func (a *app) initiateTransactionHandler(c *gin.Context) {
	var req initiateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var bill models.Bill
	if err := a.db.First(&bill, req.BillID).Error; err != nil {
		fail(c, "Bill not found")
		return
	}

	var payer models.User
	err := a.db.Preload("StudentDetails").
		Where("email = ? AND role = ?", req.Email, models.RoleStudent).First(&payer).Error
	if err != nil || payer.StudentDetails == nil {
		fail(c, "Payer not found")
		return
	}

	var paymentType models.PaymentType
	if err := a.db.Where("name = ?", paystackPaymentType).First(&paymentType).Error; err != nil {
		log.Printf("initiate transaction: payment type %q missing: %v", paystackPaymentType, err)
		fail(c, "Payment channel unavailable")
		return
	}

	reference := uuid.NewString()
	init, err := a.paystack.InitializeTransaction(c.Request.Context(), paystack.InitializeRequest{
		Amount:    strconv.FormatInt(req.Amount, 10),
		Email:     req.Email,
		Reference: reference,
		Currency:  "NGN",
	})
	if err != nil {
		log.Printf("initiate transaction for %s: %v", req.Email, err)
		fail(c, "Could not initiate transaction")
		return
	}

	payment := newPaystackPayment(bill.ID, payer.StudentDetails.ID, paymentType.ID, reference, req.Amount)
	if err := a.db.Create(&payment).Error; err != nil {
		log.Printf("initiate transaction %s: persisting payment: %v", reference, err)
		fail(c, "Could not initiate transaction")
		return
	}

	ok(c, "Transaction initiated", gin.H{
		"authorization_url": init.AuthorizationURL,
		"access_code":       init.AccessCode,
		"reference":         init.Reference,
	})
}

// newPaystackPayment is the pending local record of a gateway checkout.
func newPaystackPayment(billID, payerDetailsID, paymentTypeID uint, reference string, amountMinor int64) models.Payment {
	return models.Payment{
		BillID:           billID,
		PayerID:          payerDetailsID,
		PaymentTypeID:    paymentTypeID,
		PaymentReference: reference,
		Status:           models.PaymentPending,
		PaymentNote:      paystackPaymentNote,
		Amount:           models.MoneyFromMinor(amountMinor),
	}
}

// paystackWebhookHandler reconciles a gateway event. The signature is checked
// over the raw body before anything else; on mismatch the event is dropped
// without touching any payment. The event payload itself is never trusted
// for state: the transaction is re-verified against the gateway and the
// verified status is mapped onto the local payment.
func (a *app) paystackWebhookHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, err)
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !paystack.ValidSignature(a.cfg.PaystackSecretKey, body, signature) {
		log.Printf("webhook: invalid signature, event dropped")
		fail(c, "Invalid signature")
		return
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		badRequest(c, err)
		return
	}

	verified, err := a.paystack.VerifyTransaction(c.Request.Context(), event.Data.Reference)
	if err != nil {
		log.Printf("webhook %s: verify failed: %v", event.Data.Reference, err)
		fail(c, "Payment not verified")
		return
	}

	var payment models.Payment
	if err := a.db.Where("payment_reference = ?", verified.Reference).First(&payment).Error; err != nil {
		log.Printf("webhook %s: no matching payment", verified.Reference)
		fail(c, "Payment not found")
		return
	}

	status, note := paystack.MapStatus(verified.Status)
	payment.Status = status
	payment.PaymentNote = note

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		if payment.Status == models.PaymentPaid {
			return writeReceipt(tx, payment)
		}
		return nil
	})
	if err != nil {
		log.Printf("webhook %s: updating payment: %v", verified.Reference, err)
		fail(c, "Could not update payment")
		return
	}

	ok(c, "Payment reconciled", gin.H{
		"reference": payment.PaymentReference,
		"status":    payment.Status,
	})
}
