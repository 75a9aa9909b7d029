// Command seed loads a small development fixture: a programme with a bill
// type, one enrolled student and an issued bill, plus a financial aid type
// with a discount. Safe to run repeatedly; it skips anything already there.
package main

import (
	"log"
	"time"

	"edufin/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	v := viper.New()
	v.AutomaticEnv()
	dsn := v.GetString("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	var programme models.Programme
	if err := db.Where("name = ?", "Computer Science").First(&programme).Error; err != nil {
		programme = models.Programme{ProgrammeID: "CS2024", Name: "Computer Science"}
		if err := db.Create(&programme).Error; err != nil {
			log.Fatalf("creating programme: %v", err)
		}
		log.Println("seeded programme Computer Science")
	}

	var billType models.BillType
	if err := db.Where("name = ?", "Tuition").First(&billType).Error; err != nil {
		billType = models.BillType{Name: "Tuition", ProgrammeID: programme.ID}
		if err := db.Create(&billType).Error; err != nil {
			log.Fatalf("creating bill type: %v", err)
		}
		log.Println("seeded bill type Tuition")
	}

	var student models.User
	if err := db.Preload("StudentDetails").
		Where("email = ?", "student@example.com").First(&student).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123!"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hashing: %v", err)
		}
		student = models.User{
			Email:          "student@example.com",
			HashedPassword: hashed,
			Role:           models.RoleStudent,
			StudentDetails: &models.StudentDetails{
				StudentID:   "STU0000001",
				FirstName:   "Ada",
				LastName:    "Okafor",
				Gender:      "female",
				Nationality: "Nigerian",
				DateOfBirth: time.Date(2003, 5, 14, 0, 0, 0, 0, time.UTC),
				PhoneNumber: "+2348000000000",
				Address:     "12 University Road",
				City:        "Lagos",
				State:       "Lagos",
				ZipCode:     "100001",
				Country:     "Nigeria",
			},
		}
		if err := db.Create(&student).Error; err != nil {
			log.Fatalf("creating student: %v", err)
		}
		if err := db.Create(&models.StudentProgramme{
			StudentID:   student.StudentDetails.ID,
			ProgrammeID: programme.ID,
		}).Error; err != nil {
			log.Fatalf("enrolling student: %v", err)
		}
		log.Println("seeded student student@example.com / password123!")
	}

	var bill models.Bill
	if err := db.Where("name = ?", "2024/2025 Tuition").First(&bill).Error; err != nil {
		bill = models.Bill{
			Name:       "2024/2025 Tuition",
			AmountDue:  models.MoneyFromMinor(15000000), // 150,000.00
			DueDate:    time.Now().AddDate(0, 3, 0),
			BillTypeID: billType.ID,
		}
		if err := db.Create(&bill).Error; err != nil {
			log.Fatalf("creating bill: %v", err)
		}
		if student.StudentDetails != nil {
			if err := db.Create(&models.BillPayee{
				BillID:  bill.ID,
				PayeeID: student.StudentDetails.ID,
			}).Error; err != nil {
				log.Printf("assigning bill: %v", err)
			}
		}
		log.Println("seeded bill 2024/2025 Tuition")
	}

	var aidType models.FinancialAidType
	if err := db.Where("name = ?", "Need-based").First(&aidType).Error; err != nil {
		aidType = models.FinancialAidType{Name: "Need-based"}
		if err := db.Create(&aidType).Error; err != nil {
			log.Fatalf("creating aid type: %v", err)
		}
		log.Println("seeded aid type Need-based")
	}

	var discount models.FinancialAidDiscount
	if err := db.Where("name = ?", "Need-based tuition discount").First(&discount).Error; err != nil {
		discount = models.FinancialAidDiscount{
			Name:               "Need-based tuition discount",
			BillTypeID:         billType.ID,
			FinancialAidTypeID: aidType.ID,
			Amount:             models.MoneyFromMinor(5000000), // 50,000.00
		}
		if err := db.Create(&discount).Error; err != nil {
			log.Fatalf("creating discount: %v", err)
		}
		log.Println("seeded discount Need-based tuition discount")
	}

	log.Println("fixture ready")
}
