package mailer

import (
	"fmt"
	"html"
	"strings"

	"school-site-backend/internal/models"
)

// IsAdmission decides which template a submission gets. Matching a
// substring of the subject is a deliberately simple heuristic: the public
// admission form prefixes its subjects with "Admission".
func IsAdmission(subject string) bool {
	return strings.Contains(strings.ToLower(subject), "admission")
}

// BuildNotification returns the email subject and HTML body for a
// feedback document.
func BuildNotification(fb *models.Feedback, markReadURL string) (string, string) {
	if IsAdmission(fb.Subject) {
		return "New Admission Inquiry: " + fb.Subject,
			wrap("New Admission Inquiry", detailRows(fb)+markReadButton(markReadURL))
	}
	return "New Contact Form Message: " + fb.Subject,
		wrap("New Contact Form Message", detailRows(fb)+markReadButton(markReadURL))
}

func detailRows(fb *models.Feedback) string {
	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return fmt.Sprintf(`<tr><td class="label">%s</td><td>%s</td></tr>`,
			label, html.EscapeString(value))
	}
	return `<table class="details">` +
		row("Name", fb.Name) +
		row("Email", fb.Email) +
		row("Phone", fb.Phone) +
		row("Subject", fb.Subject) +
		row("Message", fb.Message) +
		`</table>`
}

func markReadButton(url string) string {
	if url == "" {
		return ""
	}
	return fmt.Sprintf(`<p><a class="btn" href="%s">Mark as read</a></p>`, url)
}

func wrap(title, inner string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
	body { font-family: Helvetica, Arial, sans-serif; background-color: #f6f6f6; margin: 0; }
	.container { max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 8px; overflow: hidden; }
	.header { background-color: #1a3c6e; padding: 24px; text-align: center; }
	.header h1 { color: #ffffff; margin: 0; font-size: 22px; }
	.content { padding: 32px 24px; color: #1a1a2e; line-height: 1.6; }
	.details td { padding: 6px 10px; vertical-align: top; }
	.details td.label { font-weight: bold; white-space: nowrap; }
	.btn { display: inline-block; padding: 12px 24px; background-color: #d7a24b; color: #ffffff; text-decoration: none; border-radius: 4px; font-weight: bold; }
	.footer { background-color: #f6f6f6; padding: 16px; text-align: center; font-size: 12px; color: #666666; }
</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>%s</h1></div>
		<div class="content">%s</div>
		<div class="footer">Sent automatically by the school website.</div>
	</div>
</body>
</html>`, title, inner)
}
