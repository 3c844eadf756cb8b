package server

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
)

// Caller provides the identity and scopes obtained from request headers
// injected by the fronting gateway. Token verification happens at the
// gateway; by the time a request reaches this server the headers are
// trusted.
type Caller struct {
	// UserID is the unique identity of a user. Empty for anonymous calls.
	UserID string
	// Scopes holds the raw scope strings passed in header USER_SCOPES.
	Scopes []string
	// Claims holds the value passed in header USER_CLAIMS, a JSON blob of
	// token claims. May be empty.
	Claims string
	// Authenticated is true when the gateway identified the user.
	Authenticated bool
}

// CallerFromRequest populates a Caller object based upon request headers.
// Logically this is intended to work with or without a gateway as a front
// end; absent headers yield an anonymous caller.
func CallerFromRequest(r *http.Request) Caller {
	var caller Caller
	caller.UserID = strings.TrimSpace(r.Header.Get("USER_ID"))
	caller.Authenticated = len(caller.UserID) > 0
	caller.Claims = r.Header.Get("USER_CLAIMS")
	caller.Scopes = splitScopes(r.Header.Get("USER_SCOPES"))
	if len(caller.Scopes) == 0 && len(caller.Claims) > 0 {
		caller.Scopes = scopesFromClaims(caller.Claims)
	}
	return caller
}

// ToPrincipal shapes the caller for the authorization engine.
func (c Caller) ToPrincipal() auth.Principal {
	if !c.Authenticated {
		return auth.Anonymous
	}
	return auth.Principal{
		Identifier:    c.UserID,
		Authenticated: true,
		Scopes:        c.Scopes,
	}
}

// splitScopes accepts comma or space separated scope strings.
func splitScopes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	scopes := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) > 0 {
			scopes = append(scopes, f)
		}
	}
	return scopes
}

// scopesFromClaims probes a claims blob for scopes. Both the space separated
// OAuth2 "scope" claim and an array-valued "scopes" claim are recognized.
func scopesFromClaims(claims string) []string {
	if !gjson.Valid(claims) {
		return nil
	}
	if result := gjson.Get(claims, "scopes"); result.IsArray() {
		var scopes []string
		for _, v := range result.Array() {
			if len(v.String()) > 0 {
				scopes = append(scopes, v.String())
			}
		}
		return scopes
	}
	if result := gjson.Get(claims, "scope"); result.Exists() {
		return splitScopes(result.String())
	}
	return nil
}
