package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := jwt.Generate(secret, "admin-1", "owner@azenterprises.in", "azenterprise-api", 60)
	require.NoError(t, err)

	id, email, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", id)
	assert.Equal(t, "owner@azenterprises.in", email)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate(secret, "admin-1", "a@b.c", "x", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "admin-1", "a@b.c", "x", -5)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "admin-1", "a@b.c", "x", 60)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "abc")
	assert.Error(t, err)
}
