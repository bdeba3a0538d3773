package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jobbotron/internal/apierr"
)

const claimsContextKey = "auth.claims"

// ClaimsFrom returns the claims a guard stored for this request.
// The second return is false on routes with no auth middleware.
func ClaimsFrom(c *gin.Context) (Claims, bool) {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(Claims)
	return claims, ok
}

// tokenFromRequest reads the raw token from the authorization header.
// Clients send the bare token; a "Bearer " prefix is tolerated.
func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	header = strings.TrimPrefix(header, "Bearer ")
	return strings.TrimSpace(header)
}

func (s *TokenService) verifyRequest(c *gin.Context) (Claims, bool) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return nil, false
	}
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func abort(c *gin.Context, apiErr *apierr.Error) {
	c.AbortWithStatusJSON(apiErr.Status, apiErr.Envelope())
}

// LoggedIn passes any request carrying a verifiable token.
func (s *TokenService) LoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := s.verifyRequest(c)
		if !ok {
			abort(c, apierr.Unauthorized("Unauthorized -- not logged in"))
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// CompanyAccount passes only verified company tokens.
func (s *TokenService) CompanyAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := s.verifyRequest(c)
		if !ok {
			abort(c, apierr.Unauthorized("Unauthorized -- not logged in"))
			return
		}
		if _, isCompany := claims.(CompanyClaims); !isCompany {
			abort(c, apierr.Forbidden("Unauthorized -- not a company account"))
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// IndividualAccount passes only verified individual tokens.
func (s *TokenService) IndividualAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := s.verifyRequest(c)
		if !ok {
			abort(c, apierr.Unauthorized("Unauthorized -- not logged in"))
			return
		}
		if _, isIndividual := claims.(IndividualClaims); !isIndividual {
			abort(c, apierr.Forbidden("Unauthorized -- not an individual user account"))
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// CorrectUser passes when the token identifies the individual named by
// the route's username parameter.
func (s *TokenService) CorrectUser(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := s.verifyRequest(c)
		if !ok {
			abort(c, apierr.Unauthorized("Unauthorized -- not logged in"))
			return
		}
		individual, isIndividual := claims.(IndividualClaims)
		if !isIndividual {
			abort(c, apierr.Forbidden("Unauthorized -- not an individual user account"))
			return
		}
		if individual.Username != c.Param(param) {
			abort(c, apierr.Forbidden("Unauthorized -- incorrect user"))
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// CorrectCompany passes when the token identifies the company named by
// the route's handle parameter.
func (s *TokenService) CorrectCompany(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := s.verifyRequest(c)
		if !ok {
			abort(c, apierr.Unauthorized("Unauthorized -- not logged in"))
			return
		}
		company, isCompany := claims.(CompanyClaims)
		if !isCompany {
			abort(c, apierr.Forbidden("Unauthorized -- not a company account"))
			return
		}
		if company.Handle != c.Param(param) {
			abort(c, apierr.Forbidden("Unauthorized -- incorrect company"))
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}
