// server/internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"pharma-alert-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT("ops@pharma.example", "operator", "", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@pharma.example", claims.Email)
	assert.Equal(t, "operator", claims.Role)
	assert.Empty(t, claims.PharmacyID)
}

func TestJWTCarriesPharmacyID(t *testing.T) {
	token, err := GenerateJWT("desk@healthfirst.example", "pharmacy", "PHA-NE-0001", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "PHA-NE-0001", claims.PharmacyID)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateJWT("ops@pharma.example", "operator", "", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestUserStoreIsCaseInsensitiveOnEmail(t *testing.T) {
	store := NewUserStore()
	require.NoError(t, store.Add(models.User{Email: "Ops@Pharma.example", Role: "operator"}))

	u, ok := store.FindByEmail("ops@pharma.example")
	require.True(t, ok)
	assert.Equal(t, "operator", u.Role)

	err := store.Add(models.User{Email: "OPS@pharma.example"})
	assert.Error(t, err)
}
