// Package jwt signs and validates the RS256 tokens that guard the
// administrator routes of the PiensaPeru API.
//
// Tokens are issued offline by cmd/admin-token and checked by the auth
// middleware:
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PublicKeyPath: "./keys/public.pem",
//	    Issuer:        "api.piensaperu.pe",
//	})
//	claims, err := svc.Validate(token)
//	if err == nil && claims.IsAdmin() {
//	    // allowed
//	}
package jwt
