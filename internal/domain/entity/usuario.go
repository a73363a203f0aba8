package entity

import "time"

// Usuario pessoa física autenticável; único globalmente por e-mail.
// Pode pertencer a várias organizações via MembroOrganizacao.
type Usuario struct {
	ID          string
	Nome        string
	Email       string
	SenhaHash   string
	FotoPerfil  string
	Ativo       bool
	UltimoLogin *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
