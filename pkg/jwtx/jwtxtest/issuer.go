// Package jwtxtest signs access tokens for tests.
package jwtxtest

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/reservoir/pkg/jwtx"
)

const (
	DefaultIssuer   = "https://auth.test"
	DefaultAudience = "reservoir"
)

// Issuer holds an Ed25519 key pair and signs tokens under a fixed kid.
type Issuer struct {
	Kid  string
	Name string
	Aud  string

	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

func NewIssuer(t testing.TB) *Issuer {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	return &Issuer{Kid: "test-key", Name: DefaultIssuer, Aud: DefaultAudience, priv: priv, pub: pub}
}

// JWKS returns the public half as a key set.
func (i *Issuer) JWKS() jwtx.JWKS {
	return jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewEd25519JWK(i.Kid, i.pub)}}
}

// KeySet returns a KeySet loaded with the issuer's public key.
func (i *Issuer) KeySet(t testing.TB) *jwtx.KeySet {
	t.Helper()
	ks := jwtx.NewKeySet()
	if err := ks.Reset(i.JWKS()); err != nil {
		t.Fatalf("load keyset: %v", err)
	}
	return ks
}

// Verifier returns a verifier that accepts this issuer's tokens.
func (i *Issuer) Verifier(t testing.TB) jwtx.Verifier {
	return jwtx.NewVerifier(i.KeySet(t), jwtx.VerifyOptions{Issuer: i.Name, Audience: []string{i.Aud}})
}

// Token signs a one hour token for subject carrying email.
func (i *Issuer) Token(t testing.TB, subject, email string) string {
	t.Helper()
	now := time.Now()
	return i.Sign(t, jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.Name,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{i.Aud},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: email,
	})
}

// Sign signs arbitrary claims.
func (i *Issuer) Sign(t testing.TB, c jwtx.Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, c)
	tok.Header["kid"] = i.Kid
	s, err := tok.SignedString(i.priv)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
