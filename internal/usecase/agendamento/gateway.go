package agendamento

import (
	"context"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

// Gateway é a parte do backend usada pelos casos de uso; em produção
// é o *apiclient.Cached.
type Gateway interface {
	ListarAgendamentos(ctx context.Context, auth apiclient.Auth, f domain.Filtro) (dto.Paginado[domain.Agendamento], error)
	BuscarAgendamento(ctx context.Context, auth apiclient.Auth, id string) (*domain.Agendamento, error)
	CriarAgendamento(ctx context.Context, auth apiclient.Auth, in domain.Criar) (*domain.Agendamento, error)
	AtualizarAgendamento(ctx context.Context, auth apiclient.Auth, id string, in domain.Atualizar) (*domain.Agendamento, error)
	ExcluirAgendamento(ctx context.Context, auth apiclient.Auth, id string) (bool, error)
	ImportarPlanilha(ctx context.Context, auth apiclient.Auth, arquivo apiclient.Arquivo, coordenadoriaID string) (domain.ResultadoImportacao, error)
	TecnicosPorCoordenadoria(ctx context.Context, auth apiclient.Auth, coordenadoriaID string) ([]usuario.Tecnico, error)
	MotivosListaCompleta(ctx context.Context, auth apiclient.Auth) ([]motivo.Motivo, error)
}

// Ator é quem executa a ação: permissão efetiva, id do usuário e as
// credenciais repassadas ao backend.
type Ator struct {
	UsuarioID string
	Login     string
	Permissao usuario.Permissao
	Auth      apiclient.Auth
	RequestID string
}

func (a Ator) event(action, entityID string, meta any) audit.Event {
	return audit.Event{
		UsuarioID: a.UsuarioID,
		Login:     a.Login,
		Permissao: string(a.Permissao),
		Action:    action,
		Entity:    "agendamento",
		EntityID:  entityID,
		RequestID: a.RequestID,
		Metadata:  meta,
	}
}

// carregar relê o agendamento e calcula a linha da matriz para o ator.
func carregar(
	ctx context.Context,
	gw Gateway,
	ator Ator,
	id string,
) (*domain.Agendamento, domain.Acoes, error) {

	ag, err := gw.BuscarAgendamento(ctx, ator.Auth, id)
	if err != nil {
		return nil, domain.Acoes{}, err
	}
	return ag, domain.CalcularAcoes(*ag, ator.Permissao, ator.UsuarioID), nil
}

func exigir(ok bool) error {
	if !ok {
		return httperr.ErrBusiness("forbidden")
	}
	return nil
}
