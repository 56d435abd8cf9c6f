package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/pkg/jwt"
)

func TestGenerateParse_RoundTripIdentidad(t *testing.T) {
	in := jwt.Identity{UserID: "u-1", Email: "ana@example.com", Name: "Ana", Role: "cliente"}

	token, err := jwt.Generate("secreto", in, "boutique-api", 5)
	require.NoError(t, err)

	out, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1"}, "boutique-api", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1"}, "boutique-api", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{UserID: "u-1"}, "boutique-api", 5)
	assert.Error(t, err)
}
