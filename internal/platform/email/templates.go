package email

import "fmt"

// Subject lines and HTML bodies for OTP mail. Layout carried over from the
// frontend's transactional mail design.

func verificationSubject() string { return "Verify your email address" }

func passwordResetSubject() string { return "Reset your password" }

func verificationBody(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Email Verification</h2>
  <p>Thank you for registering. Use the code below to verify your email address:</p>
  <div style="background-color: #f4f4f4; padding: 12px; text-align: center; font-size: 24px; letter-spacing: 5px; font-weight: bold;">%s</div>
  <p>This code expires in 10 minutes.</p>
  <p style="color: #777; font-size: 12px;">If you did not create an account, you can ignore this email.</p>
</div>`, code)
}

func passwordResetBody(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Password Reset</h2>
  <p>Use the code below to reset your password:</p>
  <div style="background-color: #f4f4f4; padding: 12px; text-align: center; font-size: 24px; letter-spacing: 5px; font-weight: bold;">%s</div>
  <p>This code expires in 10 minutes.</p>
  <p style="color: #777; font-size: 12px;">If you did not request a password reset, you can ignore this email.</p>
</div>`, code)
}
