package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/config"
)

const rolePrefix = "ROLE_"

// TokenVerifier validates bearer tokens issued by the configured OIDC
// provider and turns their claims into a principal.
type TokenVerifier struct {
	keyFunc    jwt.Keyfunc
	parser     *jwt.Parser
	rolesClaim string
}

func NewTokenVerifier(ctx context.Context, cfg config.OIDCConfig) (*TokenVerifier, error) {
	var (
		keyFunc jwt.Keyfunc
		methods []string
	)

	if cfg.JWKSURI != "" {
		jwks, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURI})
		if err != nil {
			return nil, fmt.Errorf("loading jwks from %s: %w", cfg.JWKSURI, err)
		}
		keyFunc = jwks.Keyfunc
		methods = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "PS256"}
	} else {
		secret := []byte(cfg.HMACSecret)
		keyFunc = func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		}
		methods = []string{jwt.SigningMethodHS256.Alg()}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithIssuer(cfg.IssuerURI),
		jwt.WithExpirationRequired(),
	}
	if len(cfg.Audience) > 0 {
		opts = append(opts, jwt.WithAudience(cfg.Audience...))
	}

	return &TokenVerifier{
		keyFunc:    keyFunc,
		parser:     jwt.NewParser(opts...),
		rolesClaim: cfg.RolesClaim,
	}, nil
}

func (v *TokenVerifier) Verify(tokenStr string) (*entity.Principal, error) {
	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(tokenStr, claims, v.keyFunc)
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &entity.Principal{
		Subject:     sub,
		Login:       strings.ToLower(stringClaim(claims, "preferred_username")),
		Email:       optionalClaim(claims, "email"),
		FirstName:   optionalClaim(claims, "given_name"),
		LastName:    optionalClaim(claims, "family_name"),
		ImageURL:    optionalClaim(claims, "picture"),
		LangKey:     optionalClaim(claims, "locale"),
		Authorities: v.authorities(claims),
	}, nil
}

// authorities collects ROLE_* entries from the groups and roles claims and
// from the configured roles claim.
func (v *TokenVerifier) authorities(claims jwt.MapClaims) []string {
	names := []string{"groups", "roles"}
	if v.rolesClaim != "" {
		names = append(names, v.rolesClaim)
	}

	seen := map[string]bool{}
	out := []string{}
	for _, name := range names {
		for _, role := range stringsClaim(claims, name) {
			if strings.HasPrefix(role, rolePrefix) && !seen[role] {
				seen[role] = true
				out = append(out, role)
			}
		}
	}
	return out
}

func stringClaim(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}

func optionalClaim(claims jwt.MapClaims, name string) *string {
	s := stringClaim(claims, name)
	if s == "" {
		return nil
	}
	return &s
}

func stringsClaim(claims jwt.MapClaims, name string) []string {
	switch v := claims[name].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// TokenIssuer mints HS256 tokens shaped like the provider's access tokens.
// Used by local development and tests.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	audience  []string
	ttl       time.Duration
}

func NewTokenIssuer(cfg config.OIDCConfig) *TokenIssuer {
	return &TokenIssuer{
		secretKey: []byte(cfg.HMACSecret),
		issuer:    cfg.IssuerURI,
		audience:  cfg.Audience,
		ttl:       cfg.TokenTTL,
	}
}

func (s *TokenIssuer) Issue(p *entity.Principal) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := jwt.MapClaims{
		"sub":                p.Subject,
		"iss":                s.issuer,
		"aud":                s.audience,
		"iat":                jwt.NewNumericDate(now),
		"nbf":                jwt.NewNumericDate(now),
		"exp":                jwt.NewNumericDate(expiresAt),
		"preferred_username": p.Login,
		"groups":             p.Authorities,
	}
	setOptional(claims, "email", p.Email)
	setOptional(claims, "given_name", p.FirstName)
	setOptional(claims, "family_name", p.LastName)
	setOptional(claims, "picture", p.ImageURL)
	setOptional(claims, "locale", p.LangKey)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return tokenStr, expiresAt, nil
}

func setOptional(claims jwt.MapClaims, name string, value *string) {
	if value != nil {
		claims[name] = *value
	}
}
