package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/onboarding"
)

// RoleAdmin is the role claim granting access to course authoring and statistics.
const RoleAdmin = "admin"

var signingMethod = jwt.SigningMethodHS256

// Claims represents the authorization claims transmitted via a JWT issued by the identity provider.
// The subject is the external identity of the user.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Claims) Identity() onboarding.Identity {
	return onboarding.Identity{ExternalID: c.Subject, Email: c.Email, Name: c.Name}
}

func (c Claims) Person() core.Person {
	return core.Person{ID: c.Subject, Name: c.Name, Email: c.Email}
}

// NewClaims returns the claims of a token valid for ttl.
func NewClaims(conf *core.Config, subject, email, name, role string, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Name:  name,
		Role:  role,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(signingMethod, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}
