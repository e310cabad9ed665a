package model

// NewsletterSubscription is one newsletter signup.
// The store enforces uniqueness of Email.
type NewsletterSubscription struct {
	Email string `json:"email"`
}

// TableName returns the table subscriptions are inserted into.
func (NewsletterSubscription) TableName() string {
	return NewsletterTable
}

// Columns lists the inserted columns, in the order of Values.
func (s *NewsletterSubscription) Columns() []string {
	return []string{"email"}
}

// Values returns the column values.
func (s *NewsletterSubscription) Values() []any {
	return []any{s.Email}
}
