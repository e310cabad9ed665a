package email

// PreviewData holds sample data for every template, for local previews and
// template tests.
var PreviewData = map[Template]map[string]string{
	TemplateNewsletterWelcome: {
		"SiteURL": "https://velyralabs.com",
	},
	TemplateContactNotification: {
		"Name":    "Ada Lovelace",
		"Email":   "ada@example.com",
		"Company": "Analytical Engines",
		"Message": "We'd like to see a demo of the inspection pipeline.",
	},
}
