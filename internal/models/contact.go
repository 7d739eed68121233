package models

// ContactSubmission is a message sent through the public contact form.
// Submissions are write-once; the dashboard only reads them.
type ContactSubmission struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Website   *string `json:"website"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"created_at,omitempty"`
}
