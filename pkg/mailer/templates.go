package mailer

import (
	"fmt"
	"time"
)

// Static HTML bodies for the transactional mails. Kept as plain string
// templates, one function per mail.

func NewUserEmail(firstName, lastName, email, loginURL, defaultPassword string) string {
	return fmt.Sprintf(`
    <h2>Hello %s %s,</h2>
    <p>A new account has been created for you (%s).</p>
    <p>Your default password is: %s</p>
    <p>Please <a href="%s">login</a> to your account and change your password.</p>
    <p>Thank you for using our platform.</p>
  `, firstName, lastName, email, defaultPassword, loginURL)
}

func NewBillEmail(firstName string, dueDate time.Time) string {
	return fmt.Sprintf(`
    <h2>Hello %s,</h2>
    <p>A new bill has been created for you.</p>
    <p>It is due on %s.</p>
    <p>Please login to your account to view and pay it.</p>
  `, firstName, dueDate.Format("Monday, 2 January 2006"))
}

func AidVerdictEmail(firstName, verdict string) string {
	return fmt.Sprintf(`
    <h2>Hello %s,</h2>
    <p>Your financial aid application has been %s.</p>
    <p>Please login to your account for details.</p>
  `, firstName, verdict)
}

func PasswordResetEmail(resetURL string) string {
	return fmt.Sprintf(`
    <h2>Hello,</h2>
    <p>A password reset was requested for your account.</p>
    <p><a href="%s">Click here to reset your password.</a></p>
    <p>If you did not request this, you can ignore this email.</p>
  `, resetURL)
}
