package config

import "os"

// Location describes one served market. The landing page renders one page per
// location; the backend only needs the slug and the mailbox that should be
// copied on new leads for that market.
type Location struct {
	Slug        string
	Name        string
	State       string
	NotifyEmail string
}

var locations = []Location{
	{Slug: "detroit", Name: "Detroit", State: "MI", NotifyEmail: "jim@vandenboss.com"},
	{Slug: "chicago", Name: "Chicago", State: "IL", NotifyEmail: "chicago@doorrenew.com"},
	{Slug: "orlando", Name: "Orlando", State: "FL", NotifyEmail: "trevor.templin@doorrenew.com"},
	{Slug: "providence", Name: "Providence", State: "RI", NotifyEmail: "kyle.sperduti@doorrenew.com"},
}

// MasterEmail is the mailbox that receives every lead notification regardless
// of location. Overridable for staging environments.
func MasterEmail() string {
	if v := os.Getenv("MASTER_EMAIL"); v != "" {
		return v
	}
	return "kevin@vandenboss.com"
}

// LocationEmail returns the notification mailbox configured for a location
// slug, or "" when the location has no dedicated recipient.
func LocationEmail(slug string) string {
	for _, loc := range locations {
		if loc.Slug == slug {
			return loc.NotifyEmail
		}
	}
	return ""
}
