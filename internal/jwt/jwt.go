package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdemtables-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "io.holdemtables"

// Audience is the intended JWT audience
const Audience = "holdemtables.io"

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// LoadKeys reads the RSA key pair named by the configuration.
// Call once at startup; a bad key pair is fatal
func LoadKeys() {
	cfg := config.Instance().JWT

	privateKey = loadPrivateKey(cfg.PrivateKey)
	publicKey = loadPublicKey(cfg.PublicKey)
}

// Sign returns a signed JWT whose subject is the user ID
func Sign(userID int64) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  strconv.FormatInt(userID, 10),
	})

	return token.SignedString(privateKey)
}

// ValidUserID verifies a signed JWT and returns its user ID
func ValidUserID(signedString string) (int64, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})
	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, errors.New("claims were not valid")
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return 0, fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, Audience) {
		return 0, errors.New("invalid audience")
	}

	if claims.Issuer != Issuer {
		return 0, errors.New("invalid issuer")
	}

	return strconv.ParseInt(claims.Subject, 10, 64)
}

func loadPublicKey(path string) *rsa.PublicKey {
	key, err := jwtgo.ParseRSAPublicKeyFromPEM(readKeyFile(path))
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA public key")
	}

	return key
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	key, err := jwtgo.ParseRSAPrivateKeyFromPEM(readKeyFile(path))
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA private key")
	}

	return key
}

func readKeyFile(path string) []byte {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not read key file")
	}

	return b
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}

	return false
}
