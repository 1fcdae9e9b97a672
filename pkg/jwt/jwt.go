package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token emitido por el proveedor de auth hospedado.
// Subject es el ID del usuario; AppRole es opcional (el rol autoritativo vive en el perfil).
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	AppRole string `json:"app_role,omitempty"`
}

// Session datos de sesión extraídos de un token válido.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// Generate firma un token HS256 con el mismo formato que el proveedor de auth.
// Se usa en tests y en herramientas locales; en producción los tokens llegan ya emitidos.
func Generate(secret, userID, email, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email:   email,
		AppRole: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la sesión.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o no trae subject.
func Parse(secret, tokenString string) (Session, error) {
	return ParseWithIssuer(secret, "", tokenString)
}

// ParseWithIssuer como Parse; con issuer no vacío además exige que el claim iss coincida.
func ParseWithIssuer(secret, issuer, tokenString string) (Session, error) {
	if secret == "" {
		return Session{}, fmt.Errorf("jwt: secret vacío")
	}
	var opts []jwt.ParserOption
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Session{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Session{}, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return Session{}, fmt.Errorf("jwt: subject vacío")
	}
	return Session{UserID: claims.Subject, Email: claims.Email, Role: claims.AppRole}, nil
}
