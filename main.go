package main

import (
	"fmt"
	"log"
	"os"

	"edufin/pkg/mailer"
	"edufin/pkg/paystack"

	"gorm.io/gorm"
)

// app carries the wired dependencies every handler needs.
type app struct {
	cfg      config
	db       *gorm.DB
	mailer   mailer.Service
	paystack *paystack.Client
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		migrate(db)
		seedDB(db, cfg)
		log.Println("migration complete")
		return
	}

	if cfg.AutoMigrate {
		migrate(db)
	}
	seedDB(db, cfg)

	if cfg.AuthDisableDev {
		log.Println("WARNING: AUTH_DISABLE_DEV is set, route guards are OFF")
	}

	a := &app{
		cfg:      cfg,
		db:       db,
		mailer:   mailer.New(cfg.SendgridAPIKey, cfg.MailFromName, cfg.MailFrom),
		paystack: paystack.New(cfg.PaystackBaseURL, cfg.PaystackSecretKey),
	}

	r := a.routes()
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
