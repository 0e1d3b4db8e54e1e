// Package stage define las etapas del pipeline de ventas y el mapeo total entre
// la enumeración de presentación (etiquetas del Kanban) y la de persistencia
// (códigos fijos de la base de datos).
package stage

// Stage es el código de persistencia de una etapa del pipeline.
type Stage string

const (
	Lead        Stage = "LEAD"
	Contacted   Stage = "CONTACTED"
	Proposal    Stage = "PROPOSAL"
	Negotiation Stage = "NEGOTIATION"
	ClosedWon   Stage = "CLOSED_WON"
	ClosedLost  Stage = "CLOSED_LOST"
)

// Fallback es la etapa para entradas no reconocidas. CreationDefault es la
// etapa inicial de una oportunidad nueva. Son constantes distintas a propósito:
// "desconocida" no es lo mismo que "recién creada".
const (
	Fallback        = Lead
	CreationDefault = Contacted
)

// Etiquetas de presentación (Kanban).
const (
	DisplayLead        = "Solicitud"
	DisplayContacted   = "Contactado"
	DisplayProposal    = "Propuesta"
	DisplayNegotiation = "Negociación"
	DisplayWon         = "Ganada"
	DisplayLost        = "Perdida"
)

var fromDisplay = map[string]Stage{
	DisplayLead:        Lead,
	DisplayContacted:   Contacted,
	DisplayProposal:    Proposal,
	DisplayNegotiation: Negotiation,
	DisplayWon:         ClosedWon,
	DisplayLost:        ClosedLost,
}

var toDisplay = map[Stage]string{
	Lead:        DisplayLead,
	Contacted:   DisplayContacted,
	Proposal:    DisplayProposal,
	Negotiation: DisplayNegotiation,
	ClosedWon:   DisplayWon,
	ClosedLost:  DisplayLost,
}

// FromDisplay traduce una etiqueta de presentación (o un código de persistencia,
// que los clientes del API también pueden enviar) a su código. Es una función
// total: entradas desconocidas devuelven Fallback y ok=false para que el caller
// registre la anomalía. Nunca lanza error.
func FromDisplay(s string) (Stage, bool) {
	if st, ok := fromDisplay[s]; ok {
		return st, true
	}
	// También aceptamos el código de persistencia tal cual.
	if _, ok := toDisplay[Stage(s)]; ok {
		return Stage(s), true
	}
	return Fallback, false
}

// Display devuelve la etiqueta de presentación. Inversa exacta de FromDisplay
// para los 6 valores canónicos; entradas desconocidas devuelven la etiqueta de
// Fallback.
func Display(s Stage) string {
	if d, ok := toDisplay[s]; ok {
		return d
	}
	return toDisplay[Fallback]
}

// Valid indica si s es uno de los 6 códigos canónicos.
func Valid(s Stage) bool {
	_, ok := toDisplay[s]
	return ok
}

// Terminal indica si la etapa es final (ganada o perdida).
func Terminal(s Stage) bool {
	return s == ClosedWon || s == ClosedLost
}

// transitions define los movimientos permitidos en el tablero. El flujo no es
// estrictamente lineal: se puede saltar de Lead a Propuesta, y perder desde
// cualquier etapa intermedia (Lead todavía no es una venta que perder).
var transitions = map[Stage]map[Stage]bool{
	Lead:        {Contacted: true, Proposal: true},
	Contacted:   {Proposal: true, Negotiation: true, ClosedLost: true},
	Proposal:    {Negotiation: true, ClosedWon: true, ClosedLost: true},
	Negotiation: {ClosedWon: true, ClosedLost: true},
	ClosedWon:   {},
	ClosedLost:  {},
}

// CanTransition indica si el movimiento from→to está permitido. Quedarse en la
// misma etapa siempre es válido (no-op).
func CanTransition(from, to Stage) bool {
	if from == to {
		return true
	}
	nexts, ok := transitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}
