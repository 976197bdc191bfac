package gateway

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// OTPValidity is the validity window stated in the OTP mail.
const OTPValidity = 5 * time.Minute

const otpSubject = "Your OTP for Registration"

var otpHTMLTemplate = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Verify Your Email</h2>
  <p>Your OTP for registration is:</p>
  <h1 style="font-size: 32px; letter-spacing: 5px; color: #4F46E5;">{{.Code}}</h1>
  <p>This OTP will expire in {{.Minutes}} minutes.</p>
  <p>If you didn't request this OTP, please ignore this email.</p>
</div>`))

// OTPMessage is a composed verification mail.
type OTPMessage struct {
	Subject string
	Plain   string
	HTML    string
}

// ComposeOTPMessage renders the verification mail for code.
func ComposeOTPMessage(code string) (*OTPMessage, error) {
	minutes := int(OTPValidity / time.Minute)

	var html bytes.Buffer
	if err := otpHTMLTemplate.Execute(&html, struct {
		Code    string
		Minutes int
	}{code, minutes}); err != nil {
		return nil, fmt.Errorf("failed to render otp mail: %w", err)
	}

	return &OTPMessage{
		Subject: otpSubject,
		Plain: fmt.Sprintf("Verify Your Email\n\nYour OTP for registration is: %s\n\n"+
			"This OTP will expire in %d minutes.\n"+
			"If you didn't request this OTP, please ignore this email.", code, minutes),
		HTML: html.String(),
	}, nil
}
