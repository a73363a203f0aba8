// Package auditoria grava a trilha de mutações. A escrita é deliberadamente
// fire-and-forget: falha de auditoria é logada e engolida, nunca derruba a
// operação principal.
package auditoria

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mare-erp/mare-api/internal/domain/entity"
	"github.com/mare-erp/mare-api/internal/domain/repository"
)

// Registro descreve uma mutação a auditar. DadosAntigos recebe o estado
// anterior do registro (nil na criação).
type Registro struct {
	UsuarioID     string
	EmpresaID     string
	OrganizacaoID string
	Acao          entity.AcaoAuditoria
	Tabela        string
	RegistroID    string
	DadosAntigos  any
	IP            string
	UserAgent     string
}

// Auditor escreve registros de auditoria em background.
type Auditor struct {
	repo repository.AuditoriaRepository
	log  zerolog.Logger
}

// NewAuditor constrói o auditor.
func NewAuditor(repo repository.AuditoriaRepository, log zerolog.Logger) *Auditor {
	return &Auditor{repo: repo, log: log}
}

// Registrar agenda a escrita do registro. Retorna imediatamente; a goroutine
// usa um contexto próprio com timeout para não herdar o cancelamento da
// requisição que já respondeu.
func (a *Auditor) Registrar(reg Registro) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var snapshot json.RawMessage
		if reg.DadosAntigos != nil {
			b, err := json.Marshal(reg.DadosAntigos)
			if err != nil {
				a.log.Warn().Err(err).Str("tabela", reg.Tabela).Msg("auditoria: snapshot não serializável")
			} else {
				snapshot = b
			}
		}

		logRow := &entity.LogAuditoria{
			ID:            uuid.New().String(),
			UsuarioID:     reg.UsuarioID,
			EmpresaID:     reg.EmpresaID,
			OrganizacaoID: reg.OrganizacaoID,
			Acao:          reg.Acao,
			Tabela:        reg.Tabela,
			RegistroID:    reg.RegistroID,
			DadosAntigos:  snapshot,
			IP:            reg.IP,
			UserAgent:     reg.UserAgent,
			CreatedAt:     time.Now(),
		}
		if err := a.repo.Create(ctx, logRow); err != nil {
			a.log.Error().Err(err).
				Str("tabela", reg.Tabela).
				Str("registro_id", reg.RegistroID).
				Msg("auditoria: falha ao gravar registro")
		}
	}()
}
