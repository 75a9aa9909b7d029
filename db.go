package main

import (
	"log"

	"edufin/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openDB(cfg config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.SetupJoinTable(&models.User{}, "Permissions", &models.UserPermission{}); err != nil {
		return nil, err
	}
	return db, nil
}

// migrate runs AutoMigrate per model, parents before children so FKs apply
// cleanly. A failure on one model is logged and does not block the rest.
func migrate(db *gorm.DB) {
	for _, m := range []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"admin_details", &models.AdminDetails{}},
		{"student_details", &models.StudentDetails{}},
		{"permissions", &models.Permission{}},
		{"users_to_permissions", &models.UserPermission{}},
		{"programmes", &models.Programme{}},
		{"students_to_programmes", &models.StudentProgramme{}},
		{"bill_types", &models.BillType{}},
		{"bills", &models.Bill{}},
		{"bills_to_payees", &models.BillPayee{}},
		{"payment_types", &models.PaymentType{}},
		{"payments", &models.Payment{}},
		{"receipts", &models.Receipt{}},
		{"refunds", &models.Refund{}},
		{"financial_aid_types", &models.FinancialAidType{}},
		{"financial_aid_discounts", &models.FinancialAidDiscount{}},
		{"financial_aid_applications", &models.FinancialAidApplication{}},
		{"support_ticket_categories", &models.SupportTicketCategory{}},
		{"support_tickets", &models.SupportTicket{}},
	} {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("migration warning (%s): %v", m.name, err)
		}
	}
}

// seedDB makes the fixed reference data exist: the permission list, the
// bootstrap super-admin and the Paystack payment type. Idempotent.
func seedDB(db *gorm.DB, cfg config) {
	for _, name := range models.AllPermissions {
		var cnt int64
		db.Model(&models.Permission{}).Where("name = ?", name).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&models.Permission{Name: name}).Error; err != nil {
				log.Printf("seed warning (permission %s): %v", name, err)
			}
		}
	}

	var cnt int64
	db.Model(&models.User{}).Where("email = ?", cfg.SuperAdminEmail).Count(&cnt)
	if cnt == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("seed warning (super admin): %v", err)
		} else {
			admin := models.User{
				Email:          cfg.SuperAdminEmail,
				HashedPassword: hashed,
				Role:           models.RoleSuperAdmin,
				AdminDetails:   &models.AdminDetails{FirstName: "Super", LastName: "Admin"},
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("seed warning (super admin): %v", err)
			} else {
				log.Printf("seeded super admin: %s", cfg.SuperAdminEmail)
			}
		}
	}

	db.Model(&models.PaymentType{}).Where("name = ?", paystackPaymentType).Count(&cnt)
	if cnt == 0 {
		if err := db.Create(&models.PaymentType{Name: paystackPaymentType}).Error; err != nil {
			log.Printf("seed warning (payment type): %v", err)
		}
	}
}
