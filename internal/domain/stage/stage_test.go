package stage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/stage"
)

// TestRoundTrip_SeisValoresCanonicos: para las 6 etiquetas de presentación,
// Display(FromDisplay(x)) == x.
func TestRoundTrip_SeisValoresCanonicos(t *testing.T) {
	displays := []string{
		stage.DisplayLead, stage.DisplayContacted, stage.DisplayProposal,
		stage.DisplayNegotiation, stage.DisplayWon, stage.DisplayLost,
	}
	for _, d := range displays {
		s, ok := stage.FromDisplay(d)
		require.True(t, ok, "etiqueta canónica %q debe mapear", d)
		assert.Equal(t, d, stage.Display(s), "ida y vuelta para %q", d)
	}
}

// TestFromDisplay_TotalSobreEntradaArbitraria: entradas desconocidas nunca
// fallan; devuelven Fallback con ok=false.
func TestFromDisplay_TotalSobreEntradaArbitraria(t *testing.T) {
	for _, in := range []string{"", "cerrada", "WON", "solicitud", "???", "Negociacion"} {
		s, ok := stage.FromDisplay(in)
		assert.False(t, ok, "entrada %q no es canónica", in)
		assert.Equal(t, stage.Fallback, s, "entrada %q debe caer en Fallback", in)
	}
}

func TestFromDisplay_AceptaCodigosDePersistencia(t *testing.T) {
	s, ok := stage.FromDisplay("CLOSED_WON")
	require.True(t, ok)
	assert.Equal(t, stage.ClosedWon, s)
}

// TestConstantesDistintas: el default de creación (Contactado) no es el mismo
// concepto que el fallback para entradas desconocidas (Solicitud).
func TestConstantesDistintas(t *testing.T) {
	assert.Equal(t, stage.Lead, stage.Fallback)
	assert.Equal(t, stage.Contacted, stage.CreationDefault)
	assert.NotEqual(t, stage.Fallback, stage.CreationDefault)
}

func TestTerminal(t *testing.T) {
	assert.True(t, stage.Terminal(stage.ClosedWon))
	assert.True(t, stage.Terminal(stage.ClosedLost))
	assert.False(t, stage.Terminal(stage.Negotiation))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to stage.Stage
		want     bool
	}{
		{stage.Lead, stage.Contacted, true},
		{stage.Lead, stage.Proposal, true},
		{stage.Contacted, stage.Negotiation, true},
		{stage.Proposal, stage.ClosedWon, true},
		{stage.Negotiation, stage.ClosedLost, true},
		{stage.ClosedWon, stage.Negotiation, false}, // terminal
		{stage.ClosedLost, stage.Lead, false},       // terminal
		{stage.Lead, stage.ClosedWon, false},        // no se gana sin propuesta
		{stage.Lead, stage.ClosedLost, false},       // un lead se descarta, no se pierde
		{stage.Negotiation, stage.Negotiation, true}, // no-op permitido
	}
	for _, c := range cases {
		assert.Equal(t, c.want, stage.CanTransition(c.from, c.to),
			"%s → %s", c.from, c.to)
	}
}
