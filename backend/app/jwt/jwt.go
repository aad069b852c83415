package jwtutil

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"team-attendance/backend/app/models"
)

// Claims mirror the user row at issue time. Color is denormalized into the
// token so the client can paint the calendar without another fetch; own-color
// updates reissue the token to keep it current.
type Claims struct {
	UserID   uint        `json:"id"`
	IDNumber string      `json:"id_number"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
	Color    string      `json:"color"`
	jwt.RegisteredClaims
}

type Signer struct {
	Secret []byte
	Issuer string
	ExpMin int
}

func (s *Signer) Sign(u *models.User) (string, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.ExpMin) * time.Minute)
	claims := Claims{
		UserID: u.ID, IDNumber: u.IDNumber, FullName: u.FullName, Role: u.Role, Color: u.Color,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: s.Issuer, IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(exp)},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) { return s.Secret, nil })
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
