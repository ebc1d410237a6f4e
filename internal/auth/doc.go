// Package auth signs admins in and guards the mutating api routes.
//
// Sign in is a local username and password check against the admin_users
// table. A successful sign in returns a signed HS256 token carrying the
// admin id and username that is valid for 24 hours by default.
//
// Tokens are stateless. Verify is a pure function of the signing secret and
// the token, there is no server side session and no revocation: signing out
// means the client discards its token.
//
// RequireBearer protects fiber routes:
//
//	api.Delete("/countries/:id", auth.RequireBearer(cfg.Auth.JWTSecret), handler)
//
// A request without a bearer token is answered with 401, a malformed,
// expired or foreign token with 403. Both happen before the handler runs.
package auth
