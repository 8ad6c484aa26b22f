package models

import "github.com/golang-jwt/jwt/v5"

// Claims carried by tokens from the identity provider. The subject is the
// user id; role is passenger, driver or admin.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
