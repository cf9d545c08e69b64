package mailer

import "fmt"

// Message is an outbound email
type Message struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer is any service that can deliver a message. Send makes exactly one
// delivery attempt and fails fast; retry policy is the caller's concern.
type Mailer interface {
	// Send delivers the message and returns the transport message ID
	Send(msg *Message) (string, error)
}

// InvitationMessage builds the organization-invitation email
func InvitationMessage(to, organizationName, inviteLink string) *Message {
	return &Message{
		To:      to,
		Subject: fmt.Sprintf("Welcome to %s - Complete Your Setup", organizationName),
		TextBody: fmt.Sprintf(`Welcome to %[1]s!

You've been invited to manage %[1]s on the UfanisiPro School Management Platform.

Complete your setup: %[2]s

This invitation will expire in 7 days.

If you didn't expect this invitation, please ignore this email.
`, organizationName, inviteLink),
		HTMLBody: fmt.Sprintf(`<h1>Welcome to %[1]s</h1>
<p>You've been selected as the administrator for <strong>%[1]s</strong> on the UfanisiPro School Management Platform.</p>
<p><a href="%[2]s">Complete Setup</a></p>
<p>This invitation link will expire in 7 days for security reasons.</p>
<p>If you didn't expect this invitation, please ignore this email.</p>`, organizationName, inviteLink),
	}
}

// WelcomeMessage builds the post-signup welcome email
func WelcomeMessage(to, organizationName, loginURL string) *Message {
	return &Message{
		To:      to,
		Subject: fmt.Sprintf("Welcome to %s - You're All Set!", organizationName),
		TextBody: fmt.Sprintf(`Welcome to %[1]s!

Your organization administrator account for %[1]s is now active.

Access your dashboard: %[2]s
`, organizationName, loginURL),
		HTMLBody: fmt.Sprintf(`<h1>Welcome to %[1]s!</h1>
<p>Your organization administrator account for <strong>%[1]s</strong> is now active.</p>
<p><a href="%[2]s">Access Dashboard</a></p>`, organizationName, loginURL),
	}
}
