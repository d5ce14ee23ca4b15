package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ahmetcoskunkizilkaya/tutoring-backend/internal/config"
)

// Mailer sends the platform's transactional email.
type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, toName, code string) error
	SendWelcome(ctx context.Context, toEmail, toName string) error
	SendPasswordReset(ctx context.Context, toEmail, toName, resetLink string) error
}

// MailService sends email via Amazon SES. When no from-address is configured
// the service is disabled and every send becomes a logged no-op.
type MailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

func NewMailService(cfg *config.Config) (*MailService, error) {
	if cfg.SESFromEmail == "" {
		slog.Info("mail service disabled: SES_FROM_EMAIL not configured")
		return &MailService{enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	slog.Info("mail service enabled", "from", cfg.SESFromEmail, "region", cfg.AWSRegion)
	return &MailService{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.SESFromEmail,
		fromName:  cfg.SESFromName,
		enabled:   true,
	}, nil
}

func (s *MailService) SendVerificationCode(ctx context.Context, toEmail, toName, code string) error {
	subject := "Verify Your Email Address"
	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h1 style="color: #007bff;">Welcome to %s!</h1>
	<p>Hi %s,</p>
	<p>Thank you for registering. Please verify your email using the code below:</p>
	<h2 style="background: #f0f0f0; padding: 12px; text-align: center; letter-spacing: 3px; font-size: 24px;">%s</h2>
	<p>This code is valid for 20 minutes.</p>
	<p>If you didn't request this, please ignore this email.</p>
	<br>
	<p>Best regards,<br><strong>%s Team</strong></p>
</div>`, s.fromName, toName, code, s.fromName)

	return s.send(ctx, toEmail, subject, htmlBody)
}

func (s *MailService) SendWelcome(ctx context.Context, toEmail, toName string) error {
	subject := "Email Verified Successfully - Welcome!"
	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<div style="background: #004aad; color: white; padding: 20px; text-align: center;">
		<h1>%s</h1>
	</div>
	<div style="background: #ffffff; padding: 20px; border: 1px solid #e0e0e0; border-top: none;">
		<p>Hi <strong>%s</strong>,</p>
		<p>Congratulations! Your email has been successfully verified.</p>
		<p>You can now log in and start exploring lectures, notes, and much more.</p>
		<p style="color: #004aad; font-weight: bold;">- Team %s</p>
	</div>
</div>`, s.fromName, toName, s.fromName)

	return s.send(ctx, toEmail, subject, htmlBody)
}

func (s *MailService) SendPasswordReset(ctx context.Context, toEmail, toName, resetLink string) error {
	subject := "Password Reset Request"
	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Password Reset Request</h2>
	<p>Hello %s,</p>
	<p>Click below to reset your password (expires in 15 minutes):</p>
	<a href="%s" style="color:#4f46e5;">Reset Password</a>
	<p>If you didn't request this, you can safely ignore this email.</p>
</div>`, toName, resetLink)

	return s.send(ctx, toEmail, subject, htmlBody)
}

func (s *MailService) send(ctx context.Context, toEmail, subject, htmlBody string) error {
	if !s.enabled {
		slog.Info("skipping email send (service disabled)", "to", toEmail, "subject", subject)
		return nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
