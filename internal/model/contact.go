package model

// ContactInquiry is a message submitted through the contact form.
type ContactInquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// TableName returns the table inquiries are inserted into.
func (ContactInquiry) TableName() string {
	return ContactTable
}

// Columns lists the inserted columns, in the order of Values.
func (c *ContactInquiry) Columns() []string {
	return []string{"name", "email", "company", "message"}
}

// Values returns the column values. An empty company is stored as NULL.
func (c *ContactInquiry) Values() []any {
	var company any
	if c.Company != "" {
		company = c.Company
	}
	return []any{c.Name, c.Email, company, c.Message}
}
