package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão mais os campos de tenancy da aplicação.
// O role viaja no token; as permissões são derivadas da matriz fechada no
// momento da verificação, nunca embutidas (evita staleness de permissão e
// comparação de strings soltas).
type Claims struct {
	jwt.RegisteredClaims
	UserID        string `json:"user_id"`
	EmpresaID     string `json:"empresa_id"`
	OrganizacaoID string `json:"organizacao_id"`
	Role          string `json:"role"` // ADMIN | GESTOR | OPERADOR | VISUALIZADOR
}

// Sessao campos verificados de um token válido.
type Sessao struct {
	UserID        string
	EmpresaID     string
	OrganizacaoID string
	Role          string
}

// Generate emite um token assinado HS256 com os identificadores de tenancy.
func Generate(secret, userID, empresaID, organizacaoID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:        userID,
		EmpresaID:     empresaID,
		OrganizacaoID: organizacaoID,
		Role:          role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve a sessão. Retorna erro para token inválido,
// expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (*Sessao, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Sessao{
		UserID:        claims.UserID,
		EmpresaID:     claims.EmpresaID,
		OrganizacaoID: claims.OrganizacaoID,
		Role:          claims.Role,
	}, nil
}
