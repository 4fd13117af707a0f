package medicalstock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

func medicals() []*entity.Medical {
	return []*entity.Medical{
		{Code: 1, ProdCode: "PAR500", Description: "Paracetamol 500mg"},
		{Code: 2, ProdCode: "IBU400", Description: "Ibuprofeno 400mg"},
		{Code: 3, ProdCode: "AMX250", Description: "Amoxicilina suspensión"},
	}
}

func TestFilterMedicalsTextoVacioDevuelveTodo(t *testing.T) {
	out := FilterMedicals(medicals(), "   ")
	assert.Len(t, out, 3)
}

func TestFilterMedicalsPorDescripcion(t *testing.T) {
	out := FilterMedicals(medicals(), "paraceta")
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Code)
}

func TestFilterMedicalsPorCodigo(t *testing.T) {
	out := FilterMedicals(medicals(), "ibu")
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Code)
}

func TestFilterMedicalsIgnoraAcentos(t *testing.T) {
	out := FilterMedicals(medicals(), "suspension")
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Code)
}

func TestFilterMedicalsVariosTerminos(t *testing.T) {
	// Basta con que alguno de los términos coincida.
	out := FilterMedicals(medicals(), "paracetamol amx")
	assert.Len(t, out, 2)
}
