package entity

import "time"

// Client representa un cliente de la organización. Las oportunidades lo
// referencian por ID pero no son dueñas de su ciclo de vida.
type Client struct {
	ID             string
	OrganizationID string
	Name           string
	Company        string
	NIT            string // NIT o CF (consumidor final)
	Email          string
	Phone          string
	Address        string
	Sector         string // pricing.SectorPrivate | pricing.SectorGovernment
	Status         string // active | deleted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
