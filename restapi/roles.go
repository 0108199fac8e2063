package restapi

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	jwtverifier "github.com/okta/okta-jwt-verifier-golang"

	"github.com/herbverse/plantdb/catalog"
)

// Environment values recognized by ResolverFromEnv.
const (
	EnvDev = "DEV"
	EnvQA  = "QA"
)

const roleKey = "plantdb.role"

// RoleResolver maps a request's bearer token to a catalog role. A blank token is allowed.
type RoleResolver interface {
	Resolve(ctx context.Context, token string) (catalog.Role, error)
}

// DevRoleResolver grants admin to everyone. Allows easy debugging on dev.
type DevRoleResolver struct{}

func (DevRoleResolver) Resolve(ctx context.Context, token string) (catalog.Role, error) {
	return catalog.RoleAdmin, nil
}

// StaticRoleResolver grants admin to a single shared token and hands any other token to Next.
// Allows easy QA, bypassing OAuth2 token verification with a simple token equality check.
type StaticRoleResolver struct {
	Token string
	Next  RoleResolver
}

func (r StaticRoleResolver) Resolve(ctx context.Context, token string) (catalog.Role, error) {
	if r.Token != "" && token == r.Token {
		return catalog.RoleAdmin, nil
	}
	if r.Next == nil || token == "" {
		return catalog.RoleUser, nil
	}
	return r.Next.Resolve(ctx, token)
}

// OktaRoleResolver verifies access tokens issued by an Okta authorization server and reads the
// role from the "role" claim, or from "groups" containing "admin".
type OktaRoleResolver struct {
	verify func(token string) (map[string]interface{}, error)
}

// NewOktaRoleResolver verifies tokens against https://<domain>/oauth2/default for clientID.
func NewOktaRoleResolver(domain, clientID string) *OktaRoleResolver {
	verifierSetup := jwtverifier.JwtVerifier{
		Issuer: "https://" + domain + "/oauth2/default",
		ClaimsToValidate: map[string]string{
			"aud": "api://default",
			"cid": clientID,
		},
	}
	verifier := verifierSetup.New()
	return &OktaRoleResolver{
		verify: func(token string) (map[string]interface{}, error) {
			jwt, err := verifier.VerifyAccessToken(token)
			if err != nil {
				return nil, err
			}
			return jwt.Claims, nil
		},
	}
}

func (r *OktaRoleResolver) Resolve(ctx context.Context, token string) (catalog.Role, error) {
	if token == "" {
		return catalog.RoleUser, nil
	}
	claims, err := r.verify(token)
	if err != nil {
		return catalog.RoleUser, fmt.Errorf("access token verification failed: %w", err)
	}
	return roleFromClaims(claims), nil
}

func roleFromClaims(claims map[string]interface{}) catalog.Role {
	if s, ok := claims["role"].(string); ok && catalog.ParseRole(s) == catalog.RoleAdmin {
		return catalog.RoleAdmin
	}
	switch groups := claims["groups"].(type) {
	case []interface{}:
		for _, g := range groups {
			if s, ok := g.(string); ok && s == "admin" {
				return catalog.RoleAdmin
			}
		}
	case []string:
		for _, s := range groups {
			if s == "admin" {
				return catalog.RoleAdmin
			}
		}
	}
	return catalog.RoleUser
}

// ResolverFromEnv picks the resolver for env, one of DEV, QA or anything else for production.
// getenv supplies PLANTDB_QA_TOKEN, OKTA_DOMAIN and OKTA_CLIENT_ID.
func ResolverFromEnv(env string, getenv func(string) string) RoleResolver {
	if env == EnvDev {
		log.Warn("PLANTDB_ENV=DEV, every caller is treated as admin")
		return DevRoleResolver{}
	}
	var okta RoleResolver
	if domain := getenv("OKTA_DOMAIN"); domain != "" {
		okta = NewOktaRoleResolver(domain, getenv("OKTA_CLIENT_ID"))
	}
	if env == EnvQA {
		return StaticRoleResolver{Token: getenv("PLANTDB_QA_TOKEN"), Next: okta}
	}
	return StaticRoleResolver{Next: okta}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header, or "".
func bearerToken(c *gin.Context) string {
	token := c.Request.Header.Get("Authorization")
	if !strings.HasPrefix(token, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

// WithRole resolves the caller's role and stores it on the gin context. Tokens that fail
// verification fall back to the user role.
func WithRole(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := resolver.Resolve(c.Request.Context(), bearerToken(c))
		if err != nil {
			log.Debug("role resolution failed, continuing as user", "error", err)
			role = catalog.RoleUser
		}
		c.Set(roleKey, role)
		c.Next()
	}
}

func roleOf(c *gin.Context) catalog.Role {
	if v, ok := c.Get(roleKey); ok {
		if r, ok := v.(catalog.Role); ok {
			return r
		}
	}
	return catalog.RoleUser
}
