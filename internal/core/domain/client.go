package domain

import "time"

// Client is the owner of zero or more accounts.
type Client struct {
	ClientID  string     `json:"clientID"`
	Name      string     `json:"name"`
	CPF       string     `json:"cpf"` // national tax id, digits only, unique
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	IsActive  bool       `json:"isActive"`
	AuditFields
}

// Activate marks the client as active.
func (c *Client) Activate(by string, now time.Time) {
	c.IsActive = true
	c.Touch(by, now)
}

// Deactivate marks the client as inactive. Accounts are left untouched.
func (c *Client) Deactivate(by string, now time.Time) {
	c.IsActive = false
	c.Touch(by, now)
}
