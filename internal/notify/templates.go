// AngelaMos | 2026
// templates.go

package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const (
	SubjectContactReply  = "Re: Your Message to Auraf Insurance"
	SubjectQuoteReply    = "Your Quote Request - Auraf Insurance"
	SubjectApproved      = "Your Auraf Agent Application Has Been Approved"
	SubjectRejected      = "Update on Your Auraf Agent Application"
	SubjectAccountReady  = "Your Auraf Insurance Account is Ready!"
	SubjectAgentAccount  = "Your Auraf Agent Account is Ready!"
	signature            = `<p>Best regards,<br/>Auraf Insurance Team</p>`
	quoteBlockStyle      = "white-space: pre-wrap; background-color: #f5f5f5; padding: 10px; border-radius: 5px;"
	credentialsBoxStyle  = "background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 15px 0;"
	temporaryPasswordCSS = "background-color: #e0e0e0; padding: 5px 10px; border-radius: 3px; font-family: monospace;"
)

var templates = template.Must(template.New("email").Parse(`
{{define "reply"}}<h2>Hi {{.Name}},</h2>
<p>{{.Intro}}</p>
<p style="` + quoteBlockStyle + `">{{.Message}}</p>
` + signature + `{{end}}

{{define "approved"}}<h2>Hi {{.Name}},</h2>
<p>Congratulations! Your application to become an Auraf Insurance agent has been approved.</p>
{{if .CredentialsSent}}<p>You will receive a separate email with your agent account login details.</p>
{{else}}<p>Our team will contact you shortly about access to your agent account.</p>
{{end}}
` + signature + `{{end}}

{{define "rejected"}}<h2>Hi {{.Name}},</h2>
<p>Thank you for your interest in becoming an Auraf Insurance agent. After reviewing your application, we are unable to approve it at this time.</p>
{{if .Note}}<p><strong>Reviewer note:</strong></p>
<p style="` + quoteBlockStyle + `">{{.Note}}</p>
{{end}}<p>You are welcome to apply again in the future.</p>
` + signature + `{{end}}

{{define "credentials"}}<h2>Welcome to Auraf Insurance!</h2>
<p>Hi {{.Name}},</p>
<p>Your account has been created successfully!</p>
<p>Here are your login credentials:</p>
<div style="` + credentialsBoxStyle + `">
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Temporary Password:</strong> <code style="` + temporaryPasswordCSS + `">{{.Password}}</code></p>
<p><strong>Role:</strong> {{.RoleLabel}}</p>
</div>
<p><strong>Next Steps:</strong></p>
<ol style="margin-left: 20px;">
<li>Go to the {{if .LoginURL}}<a href="{{.LoginURL}}">login page</a>{{else}}login page{{end}}</li>
<li>Enter your email and temporary password above</li>
<li>After logging in, you can change your password to something more secure</li>
</ol>
<p style="color: #666; font-size: 14px; margin-top: 20px;">If you did not request this account or have any questions, please contact our support team.</p>
` + signature + `{{end}}
`))

type ReplyKind string

const (
	ReplyContact ReplyKind = "contact"
	ReplyQuote   ReplyKind = "quote"
)

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

// ReplyEmail builds the response sent when an admin answers a contact
// message or a quote request.
func ReplyEmail(kind ReplyKind, to, name, message string) (Message, error) {
	subject := SubjectContactReply
	intro := "Thank you for reaching out to us. Here's our response:"
	if kind == ReplyQuote {
		subject = SubjectQuoteReply
		intro = "Thank you for your quote request. Here's our response:"
	}

	html, err := render("reply", map[string]string{
		"Name":    name,
		"Intro":   intro,
		"Message": message,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{To: to, ToName: name, Subject: subject, HTML: html}, nil
}

// Decision describes an application decision to notify about.
// CredentialsSent is true when the applicant's login details went out in
// their own email.
type Decision struct {
	Approved        bool
	To              string
	Name            string
	Note            string
	CredentialsSent bool
}

// DecisionEmail builds the single notification sent for an application
// decision. The note is only rendered for rejections.
func DecisionEmail(d Decision) (Message, error) {
	if d.Approved {
		html, err := render("approved", map[string]any{
			"Name":            d.Name,
			"CredentialsSent": d.CredentialsSent,
		})
		if err != nil {
			return Message{}, err
		}
		return Message{To: d.To, ToName: d.Name, Subject: SubjectApproved, HTML: html}, nil
	}

	html, err := render("rejected", map[string]string{
		"Name": d.Name,
		"Note": strings.TrimSpace(d.Note),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{To: d.To, ToName: d.Name, Subject: SubjectRejected, HTML: html}, nil
}

type Credentials struct {
	Email    string
	Name     string
	Password string
	Role     string
	LoginURL string
}

func CredentialsEmail(c Credentials) (Message, error) {
	subject := SubjectAccountReady
	if c.Role == "agent" {
		subject = SubjectAgentAccount
	}

	roleLabel := c.Role
	if roleLabel != "" {
		roleLabel = strings.ToUpper(roleLabel[:1]) + roleLabel[1:]
	}

	html, err := render("credentials", map[string]string{
		"Name":      c.Name,
		"Email":     c.Email,
		"Password":  c.Password,
		"RoleLabel": roleLabel,
		"LoginURL":  c.LoginURL,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{To: c.Email, ToName: c.Name, Subject: subject, HTML: html}, nil
}
