package session

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeRejectsMalformedCredentials(t *testing.T) {
	t.Parallel()

	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"alice","exp":4102444800}`))

	cases := map[string]string{
		"empty":              "",
		"single segment":     "abc",
		"two segments":       "header." + payload,
		"four segments":      "header." + payload + ".sig.extra",
		"empty payload":      "header..sig",
		"invalid base64":     "header.!!!not-base64!!!.sig",
		"invalid json":       "header." + base64.RawURLEncoding.EncodeToString([]byte("{not json")) + ".sig",
		"json array":         "header." + base64.RawURLEncoding.EncodeToString([]byte(`["ADMIN"]`)) + ".sig",
		"json string":        "header." + base64.RawURLEncoding.EncodeToString([]byte(`"ADMIN"`)) + ".sig",
		"wrong role type":    "header." + base64.RawURLEncoding.EncodeToString([]byte(`{"role":42}`)) + ".sig",
		"only dots":          "..",
		"unicode separators": "a。b。c",
	}

	for name, credential := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := Decode(credential)
				assert.False(t, ok)
			})
		})
	}
}

func TestDecodeReadsPayloadWithoutVerifyingSignature(t *testing.T) {
	t.Parallel()

	token := signToken(t, jwt.MapClaims{"sub": "manager1", "exp": 4102444800, "roles": []string{"MANAGER", "CUSTOMER"}})

	claims, ok := Decode(token)
	require.True(t, ok)
	assert.Equal(t, "manager1", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, int64(4102444800), claims.ExpiresAt.Unix())

	role, ok := claims.Role()
	require.True(t, ok)
	assert.Equal(t, RoleManager, role)

	// A forged signature is not this decoder's concern.
	forged := token[:len(token)-4] + "AAAA"
	_, ok = Decode(forged)
	assert.True(t, ok)
}

func TestDecodeAcceptsPaddedAndStandardAlphabet(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"sub":"ops?>>","exp":4102444800,"role":"ADMIN"}`)
	padded := "h." + base64.StdEncoding.EncodeToString(raw) + ".s"

	claims, ok := Decode(padded)
	require.True(t, ok)
	assert.Equal(t, "ops?>>", claims.Subject)
}

func TestClaimsRoleNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    Role
		present bool
	}{
		{name: "single role string", claims: jwt.MapClaims{"role": "ADMIN"}, want: RoleAdmin, present: true},
		{name: "role sequence takes first", claims: jwt.MapClaims{"roles": []string{"CUSTOMER", "ADMIN"}}, want: RoleCustomer, present: true},
		{name: "roles as single string", claims: jwt.MapClaims{"roles": "MANAGER"}, want: RoleManager, present: true},
		{name: "role wins over roles", claims: jwt.MapClaims{"role": "MANAGER", "roles": []string{"ADMIN"}}, want: RoleManager, present: true},
		{name: "unknown role", claims: jwt.MapClaims{"role": "SUPERUSER"}},
		{name: "lowercase is not a role", claims: jwt.MapClaims{"role": "admin"}},
		{name: "no role claim", claims: jwt.MapClaims{"sub": "admin-bob"}},
		{name: "empty sequence", claims: jwt.MapClaims{"roles": []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := Decode(signToken(t, tt.claims))
			require.True(t, ok)

			role, present := claims.Role()
			assert.Equal(t, tt.present, present)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestClaimsRoleNameKeepsUnknownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    string
		present bool
	}{
		{name: "known role", claims: jwt.MapClaims{"role": "MANAGER"}, want: "MANAGER", present: true},
		{name: "lowercase kept verbatim", claims: jwt.MapClaims{"role": "admin"}, want: "admin", present: true},
		{name: "unknown sequence head", claims: jwt.MapClaims{"roles": []string{"SUPERVISOR", "ADMIN"}}, want: "SUPERVISOR", present: true},
		{name: "blank value is absent", claims: jwt.MapClaims{"role": "  "}},
		{name: "no role claim", claims: jwt.MapClaims{"sub": "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := Decode(signToken(t, tt.claims))
			require.True(t, ok)

			name, present := claims.RoleName()
			assert.Equal(t, tt.present, present)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestClaimsExpired(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)

	t.Run("missing exp fails closed", func(t *testing.T) {
		assert.True(t, Claims{}.Expired(now))
	})

	t.Run("exp equal to now is expired", func(t *testing.T) {
		assert.True(t, Claims{ExpiresAt: jwt.NewNumericDate(now)}.Expired(now))
	})

	t.Run("exp in the past", func(t *testing.T) {
		assert.True(t, Claims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second))}.Expired(now))
	})

	t.Run("exp in the future", func(t *testing.T) {
		assert.False(t, Claims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Second))}.Expired(now))
	})
}
