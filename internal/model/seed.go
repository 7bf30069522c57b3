package model

import "time"

const day = 24 * time.Hour

// SeedProjects returns the sample projects shown on first run. CreatedAt
// values are relative to now so the most recent project is always last.
func SeedProjects(now time.Time) []Project {
	ms := now.UnixMilli()
	return []Project{
		{
			ID:        1,
			Name:      "Client A E-commerce",
			Emoji:     "🛒",
			SiteURL:   "https://www.tiendacliente-a.com",
			CpanelURL: "https://www.tiendacliente-a.com:2083",
			Username:  "admin_cliente_a",
			Password:  "SuperSecretPassword123!",
			CreatedAt: ms - 2*day.Milliseconds(),
		},
		{
			ID:        2,
			Name:      "Personal Blog",
			Emoji:     "📝",
			SiteURL:   "https://www.miblog.dev",
			CpanelURL: "https://cpanel.miblog.dev",
			Username:  "dev_user_89",
			Password:  "Miblog@Password2026",
			CreatedAt: ms - day.Milliseconds(),
		},
		{
			ID:        3,
			Name:      "Event Landing Page",
			Emoji:     "🎉",
			SiteURL:   "https://www.evento2026.com",
			CpanelURL: "https://www.evento2026.com:2083",
			Username:  "evento_admin",
			Password:  "Event@2026!Secure",
			CreatedAt: ms,
		},
	}
}

// SeedTasks returns the sample tasks shown on first run.
func SeedTasks() []Task {
	return []Task{
		{ID: 1, Title: "Update WordPress plugins", Category: CategoryMaintenance, DueDate: "2026-03-01"},
		{ID: 2, Title: "Configure SSL certificate", Category: CategorySecurity, DueDate: "2026-02-28"},
		{ID: 3, Title: "Migrate database", Category: CategoryDevelopment, DueDate: "2026-02-25", Completed: true},
		{ID: 4, Title: "Renew domain", Category: CategoryAdministration, DueDate: "2026-03-15"},
		{ID: 5, Title: "Optimize images", Category: CategoryMaintenance, DueDate: "2026-03-05", Completed: true},
	}
}

// SeedSnippets returns the sample snippet shown on first run.
func SeedSnippets() []Snippet {
	return []Snippet{
		{
			ID:    1,
			Title: "Force HTTPS (.htaccess)",
			Code: "<IfModule mod_rewrite.c>\n" +
				"RewriteEngine On\n" +
				"RewriteCond %{HTTPS} off\n" +
				"RewriteRule ^(.*)$ https://%{HTTP_HOST}%{REQUEST_URI} [L,R=301]\n" +
				"</IfModule>",
		},
	}
}
