package config_test

import (
	"net/url"
	"testing"
	"time"

	"swiss/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webToken = "00000000000000000000000000000000"

func TestSignURLBadWebToken(t *testing.T) {
	c := config.Config{WebToken: ""}
	_, err := c.SignURL("", time.Duration(0))
	assert.Error(t, err, "expected error on empty HMAC key")
}

func TestSignURL(t *testing.T) {
	c := config.Config{WebToken: webToken}
	str, err := c.SignURL("http://127.0.0.1:8080/v1/players?force=1", 1*time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.CheckURL(str))
}

func TestSignURLRelative(t *testing.T) {
	c := config.Config{WebToken: webToken}
	str, err := c.SignURL("http://swiss.example.com/v1/matches", 1*time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(str)
	require.NoError(t, err)
	assert.NoError(t, c.CheckURL(u.RequestURI()))

	u.Path = "/v1/players"
	assert.ErrorIs(t, c.CheckURL(u.RequestURI()), config.ErrInvalidToken)
}

func TestSignURLOverride(t *testing.T) {
	c := config.Config{WebToken: webToken}
	str, err := c.SignURL("https://swiss.example.com?t=foo&td=42", 1*time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.CheckURL(str))
}

func TestSignURLExpired(t *testing.T) {
	c := config.Config{WebToken: webToken}
	str, err := c.SignURL("https://swiss.example.com", -1*time.Hour)
	require.NoError(t, err)
	assert.ErrorIs(t, c.CheckURL(str), config.ErrTokenExpired)
}

func TestSignURLBadToken(t *testing.T) {
	c := config.Config{WebToken: webToken}
	str, err := c.SignURL("https://swiss.example.com", 1*time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(str)
	require.NoError(t, err)
	q := u.Query()
	q.Set("t", "invalid")
	u.RawQuery = q.Encode()

	assert.ErrorIs(t, c.CheckURL(u.String()), config.ErrInvalidToken)
}

func TestCheckURLUnsigned(t *testing.T) {
	c := config.Config{WebToken: webToken}
	assert.ErrorIs(t, c.CheckURL("/v1/players"), config.ErrInvalidToken)
}
