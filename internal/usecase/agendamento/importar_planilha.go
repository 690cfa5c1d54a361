package agendamento

import (
	"context"
	"log"
	"strings"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/storage"
	"github.com/BruksfildServices01/agendamento-smul/internal/planilha"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

type ImportarPlanilhaInput struct {
	Nome            string
	ContentType     string
	Tamanho         int64
	Conteudo        []byte
	CoordenadoriaID string
}

type ImportarPlanilha struct {
	gw       Gateway
	archiver storage.Archiver
	audit    *audit.Dispatcher
}

func NewImportarPlanilha(
	gw Gateway,
	archiver storage.Archiver,
	audit *audit.Dispatcher,
) *ImportarPlanilha {
	return &ImportarPlanilha{
		gw:       gw,
		archiver: archiver,
		audit:    audit,
	}
}

func (uc *ImportarPlanilha) Execute(
	ctx context.Context,
	ator Ator,
	in ImportarPlanilhaInput,
) (domain.ResultadoImportacao, error) {

	var res domain.ResultadoImportacao

	if !usuario.PodeImportar(ator.Permissao) {
		return res, httperr.ErrBusiness("forbidden")
	}

	// --------------------------------------------------
	// Validação do arquivo e do cabeçalho
	// --------------------------------------------------

	if err := validators.ValidatePlanilha(in.Nome, in.ContentType, in.Tamanho); err != nil {
		return res, err
	}

	resumo, err := planilha.Inspecionar(in.Conteudo, in.Nome, in.ContentType)
	if err != nil {
		return res, err
	}

	// --------------------------------------------------
	// Cópia do original (melhor esforço)
	// --------------------------------------------------

	key, err := uc.archiver.Archive(ctx, in.Nome, in.ContentType, in.Conteudo)
	if err != nil {
		log.Printf("[IMPORTAR] falha ao arquivar %s: %v", in.Nome, err)
	}

	// --------------------------------------------------
	// Envio ao backend
	// --------------------------------------------------

	res, err = uc.gw.ImportarPlanilha(ctx, ator.Auth, apiclient.Arquivo{
		Nome:        in.Nome,
		ContentType: in.ContentType,
		Conteudo:    in.Conteudo,
	}, strings.TrimSpace(in.CoordenadoriaID))
	if err != nil {
		return res, err
	}

	uc.audit.Dispatch(ator.event("importar_planilha", "", map[string]any{
		"arquivo":    in.Nome,
		"objeto":     key,
		"linhas":     resumo.Linhas,
		"importados": res.Importados,
		"erros":      res.Erros,
	}))

	return res, nil
}
