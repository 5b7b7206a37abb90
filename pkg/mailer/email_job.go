package mailer

// Template names understood by the email worker.
const (
	TemplateVerifyEmail       = "verify_email"
	TemplateResetPassword     = "reset_password"
	TemplateWelcome           = "welcome"
	TemplateReplyNotification = "reply_notification"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either set Template plus Data, or supply Subject with Text/HTML directly.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
