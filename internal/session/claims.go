package session

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload segment of a credential. The signature is
// never checked here; claims only drive UI decisions.
type Claims struct {
	Subject   string           `json:"sub"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
	RoleClaim jwt.ClaimStrings `json:"role,omitempty"`
	Roles     jwt.ClaimStrings `json:"roles,omitempty"`
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode reads the payload of a header.payload.signature credential.
// It reports false for anything that is not exactly three segments with a
// base64 JSON object in the middle.
func Decode(credential string) (Claims, bool) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 || parts[1] == "" {
		return Claims{}, false
	}

	// Tolerate the standard alphabet as well as base64url.
	segment := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])
	payload, err := segmentParser.DecodeSegment(segment)
	if err != nil {
		return Claims{}, false
	}

	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || payload[0] != '{' {
		return Claims{}, false
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, false
	}

	return claims, true
}

// RoleName normalizes the single-value and sequence shapes of the role claim
// without interpreting it. "role" wins over "roles"; the first element of a
// sequence is authoritative. An empty value counts as absent.
func (c Claims) RoleName() (string, bool) {
	for _, values := range []jwt.ClaimStrings{c.RoleClaim, c.Roles} {
		if len(values) == 0 {
			continue
		}
		name := strings.TrimSpace(values[0])
		return name, name != ""
	}
	return "", false
}

// Role is RoleName restricted to the known roles.
func (c Claims) Role() (Role, bool) {
	name, ok := c.RoleName()
	if !ok {
		return "", false
	}
	return ParseRole(name)
}

// Expired reports whether the credential is past its exp claim at now.
// A missing exp counts as expired.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.UnixMilli() <= now.UnixMilli()
}
