package textfold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/pkg/textfold"
)

func TestFold_QuitaTildesYColapsaEspacios(t *testing.T) {
	assert.Equal(t, "pantalon cano", textfold.Fold("  Pantalón   CAÑO "))
	assert.Equal(t, "camion", textfold.Fold("Camión"))
}

func TestContains_InsensibleATildes(t *testing.T) {
	assert.True(t, textfold.Contains("Blusa Algodón Orgánico", "algodon"))
	assert.True(t, textfold.Contains("Vestido  de   Noche", "vestido de noche"))
	assert.False(t, textfold.Contains("Falda", "blusa"))
	assert.False(t, textfold.Contains("Falda", "   "))
}

func TestSplitCSV_DescartaVacios(t *testing.T) {
	assert.Equal(t, []string{"blusa", "pantalon"}, textfold.SplitCSV("Blusa, ,Pantalón,"))
	assert.Nil(t, textfold.SplitCSV(""))
}
