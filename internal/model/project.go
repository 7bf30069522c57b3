package model

import "strings"

// Project is a tracked website plus its control-panel credentials.
// Password is stored and persisted in clear text.
type Project struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	SiteURL   string `json:"siteUrl"`
	CpanelURL string `json:"cpanelUrl"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt int64  `json:"createdAt"`
}

// DefaultEmoji is used for new projects when the form leaves the tag empty.
const DefaultEmoji = "📁"

// DisplayHost returns the site URL without its https:// prefix.
func (p Project) DisplayHost() string {
	return strings.TrimPrefix(p.SiteURL, "https://")
}
