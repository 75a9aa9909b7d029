package main

import (
	"log"
	"time"

	"edufin/models"

	"github.com/gin-gonic/gin"
)

// Aggregates are computed over fetched rows rather than SQL SUMs so every
// figure goes through the same exact minor-unit arithmetic as the rest of
// the API.

type billStats struct {
	BillCount     int64        `json:"billCount"`
	TotalBilled   models.Money `json:"totalBilled"`
	TotalPaid     models.Money `json:"totalPaid"`
	TotalDiscount models.Money `json:"totalDiscount"`
	Outstanding   models.Money `json:"outstanding"`
	OverdueCount  int64        `json:"overdueCount"`
}

// studentBillStats derives the per-student figures: what was billed, what
// the current aid type takes off, what was paid and what is overdue.
func (a *app) studentBillStats(details *models.StudentDetails) (billStats, error) {
	var bills []models.Bill
	err := a.db.Joins("JOIN bills_to_payees ON bills_to_payees.bill_id = bills.id").
		Where("bills_to_payees.payee_id = ?", details.ID).Find(&bills).Error
	if err != nil {
		return billStats{}, err
	}

	info, err := a.deriveAidInfo(details.ID)
	if err != nil {
		return billStats{}, err
	}
	discountByBillType := map[uint]models.Money{}
	for _, d := range info.Discounts {
		discountByBillType[d.BillTypeID] += d.Amount
	}

	var paid []models.Payment
	err = a.db.Where("payer_id = ? AND status = ?", details.ID, models.PaymentPaid).
		Find(&paid).Error
	if err != nil {
		return billStats{}, err
	}
	paidByBill := map[uint]models.Money{}
	var totalPaid models.Money
	for _, p := range paid {
		paidByBill[p.BillID] += p.Amount
		totalPaid += p.Amount
	}

	stats := billStats{BillCount: int64(len(bills)), TotalPaid: totalPaid}
	now := time.Now()
	for _, bill := range bills {
		stats.TotalBilled += bill.AmountDue
		discount := discountByBillType[bill.BillTypeID]
		if discount > bill.AmountDue {
			discount = bill.AmountDue
		}
		stats.TotalDiscount += discount

		owed := bill.AmountDue - discount - paidByBill[bill.ID]
		if owed > 0 {
			stats.Outstanding += owed
			if bill.DueDate.Before(now) {
				stats.OverdueCount++
			}
		}
	}
	return stats, nil
}

func (a *app) studentBillStatsHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}
	stats, err := a.studentBillStats(user.StudentDetails)
	if err != nil {
		log.Printf("student %d: bill stats: %v", user.ID, err)
		fail(c, "Could not load bill stats")
		return
	}
	ok(c, "Bill stats retrieved", stats)
}

type paymentStats struct {
	Total      int64        `json:"total"`
	Pending    int64        `json:"pending"`
	Paid       int64        `json:"paid"`
	Failed     int64        `json:"failed"`
	Refunded   int64        `json:"refunded"`
	AmountPaid models.Money `json:"amountPaid"`
}

func (a *app) paymentStatsFor(payerID *uint) (paymentStats, error) {
	q := a.db.Model(&models.Payment{})
	if payerID != nil {
		q = q.Where("payer_id = ?", *payerID)
	}
	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return paymentStats{}, err
	}

	stats := paymentStats{Total: int64(len(payments))}
	for _, p := range payments {
		switch p.Status {
		case models.PaymentPending:
			stats.Pending++
		case models.PaymentPaid:
			stats.Paid++
			stats.AmountPaid += p.Amount
		case models.PaymentFailed:
			stats.Failed++
		case models.PaymentRefunded:
			stats.Refunded++
		}
	}
	return stats, nil
}

func (a *app) studentPaymentStatsHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}
	stats, err := a.paymentStatsFor(&user.StudentDetails.ID)
	if err != nil {
		log.Printf("student %d: payment stats: %v", user.ID, err)
		fail(c, "Could not load payment stats")
		return
	}
	ok(c, "Payment stats retrieved", stats)
}

func (a *app) studentDashboardStatsHandler(c *gin.Context) {
	user, okUser := a.resolveStudent(c)
	if !okUser {
		return
	}
	bills, err := a.studentBillStats(user.StudentDetails)
	if err != nil {
		log.Printf("student %d: dashboard stats: %v", user.ID, err)
		fail(c, "Could not load dashboard stats")
		return
	}
	payments, err := a.paymentStatsFor(&user.StudentDetails.ID)
	if err != nil {
		log.Printf("student %d: dashboard stats: %v", user.ID, err)
		fail(c, "Could not load dashboard stats")
		return
	}
	ok(c, "Dashboard stats retrieved", gin.H{
		"bills":    bills,
		"payments": payments,
	})
}

// adminDashboardStatsHandler aggregates across the whole institution.
func (a *app) adminDashboardStatsHandler(c *gin.Context) {
	var studentCount, programmeCount, billCount, pendingApplications int64
	a.db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&studentCount)
	a.db.Model(&models.Programme{}).Count(&programmeCount)
	a.db.Model(&models.Bill{}).Count(&billCount)
	a.db.Model(&models.FinancialAidApplication{}).
		Where("status = ?", models.AidPending).Count(&pendingApplications)

	payments, err := a.paymentStatsFor(nil)
	if err != nil {
		log.Printf("admin dashboard stats: %v", err)
		fail(c, "Could not load dashboard stats")
		return
	}

	var bills []models.Bill
	if err := a.db.Find(&bills).Error; err != nil {
		log.Printf("admin dashboard stats: %v", err)
		fail(c, "Could not load dashboard stats")
		return
	}
	var totalIssued models.Money
	var overdueBills int64
	now := time.Now()
	for _, bill := range bills {
		var payees int64
		a.db.Model(&models.BillPayee{}).Where("bill_id = ?", bill.ID).Count(&payees)
		totalIssued += bill.AmountDue * models.Money(payees)
		if bill.DueDate.Before(now) {
			overdueBills++
		}
	}

	ok(c, "Dashboard stats retrieved", gin.H{
		"students":            studentCount,
		"programmes":          programmeCount,
		"bills":               billCount,
		"overdueBills":        overdueBills,
		"totalIssued":         totalIssued,
		"pendingApplications": pendingApplications,
		"payments":            payments,
	})
}
