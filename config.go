package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type config struct {
	Port        int
	DBDSN       string
	AutoMigrate bool

	JWTSecret    string
	JWTExpiresIn time.Duration

	AllowedOrigins []string
	FEDomain       string

	SuperAdminEmail    string
	SuperAdminPassword string

	PaystackSecretKey string
	PaystackBaseURL   string

	SendgridAPIKey string
	MailFrom       string
	MailFromName   string

	UploadBase string

	// AuthDisableDev turns the route guard off entirely. Never the default;
	// must be set explicitly, and startup logs a warning when it is on.
	AuthDisableDev bool
}

// loadConfig reads the environment (plus ./.env if present) and fails fast
// on missing required keys.
func loadConfig() (config, error) {
	_ = godotenv.Load() // optional; real env vars win

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	v.SetDefault("MAIL_FROM", "noreply@localhost")
	v.SetDefault("MAIL_FROM_NAME", "EduFinance")
	v.SetDefault("UPLOAD_BASE", "uploads")
	v.SetDefault("AUTH_DISABLE_DEV", false)

	cfg := config{
		Port:               v.GetInt("PORT"),
		DBDSN:              v.GetString("DB_DSN"),
		AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTExpiresIn:       v.GetDuration("JWT_EXPIRES_IN"),
		FEDomain:           v.GetString("FE_DOMAIN"),
		SuperAdminEmail:    v.GetString("SUPER_ADMIN_EMAIL"),
		SuperAdminPassword: v.GetString("SUPER_ADMIN_PASSWORD"),
		PaystackSecretKey:  v.GetString("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:    v.GetString("PAYSTACK_BASE_URL"),
		SendgridAPIKey:     v.GetString("SENDGRID_API_KEY"),
		MailFrom:           v.GetString("MAIL_FROM"),
		MailFromName:       v.GetString("MAIL_FROM_NAME"),
		UploadBase:         v.GetString("UPLOAD_BASE"),
		AuthDisableDev:     v.GetBool("AUTH_DISABLE_DEV"),
	}
	if origins := v.GetString("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	var missing []string
	for key, val := range map[string]string{
		"DB_DSN":               cfg.DBDSN,
		"JWT_SECRET":           cfg.JWTSecret,
		"PAYSTACK_SECRET_KEY":  cfg.PaystackSecretKey,
		"SUPER_ADMIN_EMAIL":    cfg.SuperAdminEmail,
		"SUPER_ADMIN_PASSWORD": cfg.SuperAdminPassword,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return config{}, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if cfg.JWTExpiresIn <= 0 {
		return config{}, fmt.Errorf("JWT_EXPIRES_IN must be a positive duration")
	}
	return cfg, nil
}
