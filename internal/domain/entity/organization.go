package entity

import "time"

// Organization es la raíz del tenant: toda entidad pertenece a exactamente una
// organización y ningún dato es visible entre organizaciones.
type Organization struct {
	ID        string
	Name      string
	NIT       string // NIT de la organización (Guatemala)
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
