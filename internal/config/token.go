package config

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

var (
	// ErrTokenExpired means the token is valid, but expired.
	ErrTokenExpired = errors.New("token expired")

	ErrInvalidToken = errors.New("invalid token")
)

// SignURL adds a signed token query parameter to an URL, valid for the given
// duration. Only the path and query are signed so the URL stays valid
// whatever host the server is reached through.
func (c *Config) SignURL(str string, d time.Duration) (string, error) {
	u, err := url.Parse(str)
	if err != nil {
		return "", fmt.Errorf("unable to parse URL: %w", err)
	}

	q := u.Query()
	q.Del("t")
	q.Set("td", strconv.FormatInt(time.Now().Add(d).Unix(), 10))

	token, err := c.sign(signedPart(u, q))
	if err != nil {
		return "", err
	}

	q.Set("t", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// CheckURL ensures the given URL is properly signed. The URL can be relative,
// as found in an http.Request.
func (c *Config) CheckURL(str string) error {
	u, err := url.Parse(str)
	if err != nil {
		return fmt.Errorf("unable to parse URL: %w", err)
	}

	q := u.Query()
	td, err := strconv.ParseInt(q.Get("td"), 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	inputToken := q.Get("t")
	q.Del("t")

	token, err := c.sign(signedPart(u, q))
	if err != nil {
		return err
	}

	if !hmac.Equal([]byte(token), []byte(inputToken)) {
		return ErrInvalidToken
	}

	// Keep this last, this error must be returned _only_ if the token is valid.
	if time.Unix(td, 0).Before(time.Now()) {
		return ErrTokenExpired
	}

	return nil
}

func signedPart(u *url.URL, q url.Values) []byte {
	return []byte(u.EscapedPath() + "?" + q.Encode())
}

func (c *Config) sign(b []byte) (string, error) {
	if len(c.WebToken) < 32 {
		return "", errors.New("web token must be ≥ 32 chars")
	}

	mac := hmac.New(sha256.New, []byte(c.WebToken))
	if _, err := mac.Write(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(mac.Sum(nil)), nil
}
