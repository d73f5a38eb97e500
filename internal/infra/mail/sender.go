package mail

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/marketvibe/doorrenew-api/internal/config"
	"github.com/marketvibe/doorrenew-api/internal/entity"
)

const defaultFrom = "Door Renew Leads <notifications@marketvibe.app>"

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     defaultFrom,
	}
}

// SendLeadNotification announces a new step-one lead to the master mailbox
// and to the location's mailbox when one is configured.
func (s *EmailSender) SendLeadNotification(lead *entity.Lead) error {
	body := fmt.Sprintf(`New Lead from Door Renew Website

Name: %s
Phone: %s
Email: %s
Door Issue: %s
Location: %s

Submitted at: %s
`,
		lead.FirstName,
		lead.Phone,
		orNotProvided(lead.Email),
		orNotProvided(lead.DoorIssue),
		orNotSpecified(lead.Location),
		lead.CreatedAt.Format(time.RFC3339),
	)

	return s.sendToLeadRecipients(lead.Location, "New Door Renew Lead", body)
}

// SendSecondStepNotification summarizes the enriched lead, including any
// uploaded image URLs.
func (s *EmailSender) SendSecondStepNotification(lead *entity.Lead) error {
	images := "No images uploaded"
	if len(lead.ImageURLs) > 0 {
		images = "\n" + strings.Join(lead.ImageURLs, "\n")
	}

	updatedAt := time.Now().Format(time.RFC3339)
	if lead.SecondStepAt != nil {
		updatedAt = lead.SecondStepAt.Format(time.RFC3339)
	}

	body := fmt.Sprintf(`Additional Information Submitted for Lead

Name: %s
Phone: %s
Email: %s
Door Issue: %s
Location: %s

Comments: %s

Images: %s

Original Submission: %s
Updated: %s
`,
		lead.FirstName,
		lead.Phone,
		orNotProvided(lead.Email),
		orNotProvided(lead.DoorIssue),
		orNotSpecified(lead.Location),
		orDefault(lead.Comments, "No comments provided"),
		images,
		lead.CreatedAt.Format(time.RFC3339),
		updatedAt,
	)

	return s.sendToLeadRecipients(lead.Location, "Additional Information - Door Renew Lead", body)
}

// SendWebhookLeadNotification announces a lead pushed by an ad-platform
// integration for a recognized form.
func (s *EmailSender) SendWebhookLeadNotification(lead *entity.Lead, via string) error {
	leadType := strings.ToUpper(orDefault(lead.LeadType, "door"))
	location := strings.ToUpper(lead.Location)

	body := fmt.Sprintf(`New %s Lead from Facebook (via %s)

Location: %s
Lead Type: %s

Contact Information:
Name: %s
Phone: %s
Email: %s

Form Details:
Form ID: %s
Form Name: %s

Campaign Details:
Campaign: %s
Ad: %s
Platform: %s

Submitted at: %s
`,
		leadType,
		orDefault(via, "Facebook"),
		location,
		leadType,
		orNotProvided(lead.FirstName),
		orNotProvided(lead.Phone),
		orNotProvided(lead.Email),
		orNotSpecified(lead.FormID),
		orNotSpecified(lead.FormName),
		orNotSpecified(lead.CampaignName),
		orNotSpecified(lead.AdName),
		orDefault(via, "Facebook"),
		time.Now().Format(time.RFC3339),
	)

	subject := fmt.Sprintf("New %s Lead - %s", leadType, location)
	return s.sendToLeadRecipients(lead.Location, subject, body)
}

// SendUnknownFormWarning alerts the master mailbox that a webhook delivery
// referenced a form id missing from the mapping, with the raw payload so the
// form can be registered.
func (s *EmailSender) SendUnknownFormWarning(lead *entity.Lead, rawPayload []byte) error {
	body := fmt.Sprintf(`WARNING: Unrecognized Facebook Lead Form

Received lead from unknown form ID: %s

Lead Details:
Name: %s
Phone: %s
Email: %s

Form Details:
Form ID: %s
Form Name: %s

Campaign Details:
Campaign: %s
Ad: %s

Raw Form Data:
%s
`,
		orNotSpecified(lead.FormID),
		orNotProvided(lead.FirstName),
		orNotProvided(lead.Phone),
		orNotProvided(lead.Email),
		orNotSpecified(lead.FormID),
		orNotSpecified(lead.FormName),
		orNotSpecified(lead.CampaignName),
		orNotSpecified(lead.AdName),
		string(rawPayload),
	)

	return s.send(config.MasterEmail(), "Unknown Facebook Lead Form - Action Required", body)
}

// sendToLeadRecipients delivers to the master mailbox and, when the location
// has a configured recipient, to that mailbox too. The first failure wins;
// callers treat any error as a logged best-effort miss.
func (s *EmailSender) sendToLeadRecipients(location, subject, body string) error {
	if err := s.send(config.MasterEmail(), subject, body); err != nil {
		return err
	}

	if locEmail := config.LocationEmail(location); locEmail != "" {
		return s.send(locEmail, subject, body)
	}
	return nil
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func orNotProvided(v string) string {
	return orDefault(v, "Not provided")
}

func orNotSpecified(v string) string {
	return orDefault(v, "Not specified")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
