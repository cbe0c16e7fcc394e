package entity

import "time"

// Bill is one expense report entry.
type Bill struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Amount       int       `json:"amount"`
	VAT          string    `json:"vat"`
	PCT          int       `json:"pct"`
	Date         string    `json:"date"` // calendar date, YYYY-MM-DD
	Commentary   string    `json:"commentary"`
	Status       string    `json:"status"`
	CommentAdmin string    `json:"commentAdmin"`
	FileURL      string    `json:"fileUrl"`
	FileName     string    `json:"fileName"`
	FileType     string    `json:"-"` // declared MIME type of the receipt
	FilePath     string    `json:"-"` // receipt location relative to the receipt store
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User is the person making a request.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// IsAdmin reports whether the user may review bills.
func (u User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// CanSee reports whether the user may read the bill.
func (u User) CanSee(b *Bill) bool {
	return u.IsAdmin() || (u.Email != "" && u.Email == b.Email)
}
