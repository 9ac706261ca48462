package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cash-advance-monitoring/cam-api/internal/models"
	"github.com/cash-advance-monitoring/cam-api/pkg/config"
	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
)

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Secret:     "unit-test-secret",
		Expiration: time.Hour,
		Issuer:     "cam-api",
	}
}

func TestTokenServiceIssueAndValidate(t *testing.T) {
	service := NewTokenService(testTokenConfig())
	staff := &models.Staff{ID: "staff-1", Email: "jane.doe@example.com"}

	token, err := service.Issue(staff)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.StaffID)
	assert.Equal(t, "jane.doe@example.com", claims.Email)
	assert.Equal(t, "cam-api", claims.Issuer)
}

func TestTokenServiceValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService(testTokenConfig())
	token, err := issuer.Issue(&models.Staff{ID: "staff-1"})
	require.NoError(t, err)

	other := NewTokenService(config.TokenConfig{Secret: "different", Expiration: time.Hour})
	_, err = other.Validate(token)
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestTokenServiceValidateExpired(t *testing.T) {
	service := NewTokenService(testTokenConfig())
	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := service.Issue(&models.Staff{ID: "staff-1"})
	require.NoError(t, err)

	_, err = service.Validate(token)
	require.Error(t, err)
}

func TestTokenServiceValidateGarbage(t *testing.T) {
	service := NewTokenService(testTokenConfig())

	_, err := service.Validate("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
