package entity

import (
	"encoding/json"
	"time"
)

// AcaoAuditoria tipo de mutação registrada na trilha de auditoria.
type AcaoAuditoria string

const (
	AuditoriaCriar    AcaoAuditoria = "CRIAR"
	AuditoriaEditar   AcaoAuditoria = "EDITAR"
	AuditoriaExcluir  AcaoAuditoria = "EXCLUIR"
)

// LogAuditoria registro imutável de uma mutação: quem, onde, o quê e o
// snapshot anterior. A escrita é fire-and-forget — nunca derruba a operação
// principal.
type LogAuditoria struct {
	ID            string
	UsuarioID     string
	EmpresaID     string
	OrganizacaoID string
	Acao          AcaoAuditoria
	Tabela        string
	RegistroID    string
	DadosAntigos  json.RawMessage
	IP            string
	UserAgent     string
	CreatedAt     time.Time
}
