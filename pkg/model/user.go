package model

import "strings"

// UserProfile keeps per-user notification settings. NotifyURLs is a
// comma-separated list of service URLs understood by the notification
// channel; their schemes are opaque to us.
type UserProfile struct {
	UserID     int    `json:"user_id"`
	NotifyURLs string `json:"notify_urls"`
}

// Destinations splits NotifyURLs into individual URLs, dropping empty entries.
func (p *UserProfile) Destinations() []string {
	var urls []string
	for _, u := range strings.Split(p.NotifyURLs, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
