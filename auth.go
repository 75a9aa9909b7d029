package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"edufin/models"
	"edufin/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *app) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var user models.User
	err := a.db.Preload("Permissions").Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		fail(c, "Invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)) != nil {
		fail(c, "Invalid email or password")
		return
	}

	token, err := a.mintToken(user)
	if err != nil {
		log.Printf("login: minting token for %s: %v", user.Email, err)
		fail(c, "Could not complete login")
		return
	}

	ok(c, "Login successful", gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"role":        user.Role,
		"permissions": user.PermissionNames(),
		"token":       token,
	})
}

func (a *app) mintToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"email":       user.Email,
		"role":        user.Role,
		"permissions": user.PermissionNames(),
		"exp":         time.Now().Add(a.cfg.JWTExpiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.JWTSecret))
}

// Password reset is a two-step flow: request mails out a link carrying a
// short-lived single-purpose token, perform exchanges that token plus the
// new password.

const resetPurpose = "password-reset"

type resetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

func (a *app) requestPasswordResetHandler(c *gin.Context) {
	var req resetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	// Same answer whether or not the account exists.
	const sent = "If the account exists, a reset email has been sent"

	var user models.User
	if err := a.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		ok(c, sent, nil)
		return
	}

	token, err := a.resetTokenFor(user.Email)
	if err != nil {
		log.Printf("password reset: minting token for %s: %v", user.Email, err)
		fail(c, "Could not send reset email")
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", a.cfg.FEDomain, token)
	if err := a.mailer.Send(mailer.Message{
		To:      user.Email,
		Subject: "Password Reset",
		HTML:    mailer.PasswordResetEmail(resetURL),
	}); err != nil {
		log.Printf("password reset: sending email to %s: %v", user.Email, err)
	}
	ok(c, sent, nil)
}

type resetPerformBody struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (a *app) performPasswordResetHandler(c *gin.Context) {
	var req resetPerformBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	email, err := a.validateResetToken(req.Token)
	if err != nil {
		fail(c, "Invalid or expired reset token")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, "Could not reset password")
		return
	}
	res := a.db.Model(&models.User{}).Where("email = ?", email).
		Update("hashed_password", hashed)
	if res.Error != nil || res.RowsAffected == 0 {
		fail(c, "Could not reset password")
		return
	}
	ok(c, "Password has been reset", nil)
}

func (a *app) resetTokenFor(email string) (string, error) {
	claims := jwt.MapClaims{
		"email":   email,
		"purpose": resetPurpose,
		"exp":     time.Now().Add(30 * time.Minute).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.JWTSecret))
}

func (a *app) validateResetToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return []byte(a.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid reset token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid reset token")
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetPurpose {
		return "", errors.New("not a reset token")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errors.New("reset token missing subject")
	}
	return email, nil
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode draws n characters from the upper-case alphanumeric alphabet.
// Used for student IDs, programme IDs and receipt numbers.
func randomCode(n int) (string, error) {
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[idx.Int64()]
	}
	return string(out), nil
}

// randomPassword is the default credential mailed to newly created accounts.
func randomPassword() (string, error) {
	return randomCode(12)
}

// hashPassword wraps bcrypt with the default cost used everywhere here.
func hashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// findUserByEmail is shared by the handlers that key off the principal.
func (a *app) findUserByEmail(email string, preloads ...string) (models.User, error) {
	q := a.db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var user models.User
	if err := q.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
