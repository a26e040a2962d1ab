package service

import (
	"context"
	"fmt"

	"tutor_backend/internal/config"
	"tutor_backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// EmailSender dispatches the account lifecycle emails. AuthService only
// depends on this interface so tests can record instead of send.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}

// EmailService sends via Amazon SES. When no from-address is configured the
// service is disabled and every send is a logged no-op, which keeps local
// development working without AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

func NewEmailService(cfg *config.EmailConfig) (*EmailService, error) {
	if cfg.FromEmail == "" {
		logger.Log.Warn("Email service disabled: from address not configured")
		return &EmailService{enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	logger.Log.Info("Email service enabled",
		zap.String("from", cfg.FromEmail),
		zap.String("region", cfg.Region),
	)

	return &EmailService{
		client:     sesv2.NewFromConfig(awsCfg),
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		appBaseURL: cfg.AppBaseURL,
		enabled:    true,
	}, nil
}

func (s *EmailService) SendVerificationEmail(ctx context.Context, to, token string) error {
	url := fmt.Sprintf("%s/verify-email?token=%s", s.appBaseURL, token)
	body := fmt.Sprintf(`Welcome to AI Tutor SG!

Please verify your email address by clicking the link below:
%s

If you didn't create this account, please ignore this email.

Best regards,
AI Tutor SG Team
`, url)
	return s.send(ctx, to, "Verify Your Email - AI Tutor SG", body)
}

func (s *EmailService) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	url := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, token)
	body := fmt.Sprintf(`You requested a password reset for your AI Tutor SG account.

Click the link below to reset your password:
%s

If you didn't request this, please ignore this email.

Best regards,
AI Tutor SG Team
`, url)
	return s.send(ctx, to, "Reset Your Password - AI Tutor SG", body)
}

func (s *EmailService) send(ctx context.Context, to, subject, body string) error {
	if !s.enabled {
		logger.Log.Info("Email sending skipped (service disabled)",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
