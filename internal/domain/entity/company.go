package entity

import "time"

// Company representa una organización/tenant del sistema. Todo dato analítico se filtra por ella.
type Company struct {
	ID        string
	Name      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
}
