package tokenutil

import (
	"errors"
	"time"

	"school-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

// TypeOrganizationInvitation is the claim type carried by invitation tokens
const TypeOrganizationInvitation = "organization_invitation"

// ErrInvalidToken is the only error Verify returns. Malformed, tampered and
// expired tokens are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid or expired invitation token")

// InvitationClaims is the signed payload of an organization invitation.
// The token is a bearer credential binding an email address to a pending
// organization; the durable side of the invitation lives in the database.
type InvitationClaims struct {
	Email            string `json:"email"`
	OrganizationName string `json:"organizationName"`
	Type             string `json:"type"`
	CreatedAt        string `json:"createdAt"`
	jwt.RegisteredClaims
}

// Service issues and verifies invitation tokens. Rotating the signing key
// invalidates all outstanding tokens.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewService creates a token service from the invite configuration
func NewService(cfg *config.InviteConfig) *Service {
	return &Service{
		signingKey: []byte(cfg.SigningKey),
		ttl:        cfg.TTL,
		now:        time.Now,
	}
}

// WithNow overrides the clock used at issuance. Test hook.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue creates a signed invitation token binding email to organizationName,
// valid for the configured window (7 days by default)
func (s *Service) Issue(email, organizationName string) (string, error) {
	now := s.now()
	claims := InvitationClaims{
		Email:            email,
		OrganizationName: organizationName,
		Type:             TypeOrganizationInvitation,
		CreatedAt:        now.UTC().Format(time.RFC3339),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// Verify validates the signature and expiry of a token and returns the
// embedded payload. Every failure mode maps to ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*InvitationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &InvitationClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*InvitationClaims)
	if !ok || !token.Valid || claims.Type != TypeOrganizationInvitation {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
