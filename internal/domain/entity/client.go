package entity

import "time"

// Client dueño del equipo. Entra a su vista con teléfono + PIN.
type Client struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string // único
	Email     string
	PINHash   string // bcrypt
	CreatedAt time.Time
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
