package agendamento

import (
	"context"
	"log"
	"strings"

	domain "github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/motivo"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/dto"
	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
)

const TamanhoPagina = 10

type ListarInput struct {
	Pagina int
	Busca  string
	Status string

	// Data vazia com DataInformada = true significa "todas as datas";
	// sem o parâmetro, a lista abre no dia de hoje.
	Data          string
	DataInformada bool
}

// DataEfetiva aplica o padrão de hoje.
func (in ListarInput) DataEfetiva() string {
	if !in.DataInformada {
		return timezone.Today()
	}
	return strings.TrimSpace(in.Data)
}

type Listar struct {
	gw Gateway
}

func NewListar(gw Gateway) *Listar {
	return &Listar{gw: gw}
}

func (uc *Listar) Execute(
	ctx context.Context,
	ator Ator,
	in ListarInput,
) (*dto.ListaAgendamentos, error) {

	data := in.DataEfetiva()

	filtro := domain.Filtro{
		Pagina:     in.Pagina,
		Limite:     TamanhoPagina,
		Busca:      strings.TrimSpace(in.Busca),
		Status:     in.Status,
		DataInicio: data,
		DataFim:    data,
	}
	if filtro.Pagina <= 0 {
		filtro.Pagina = 1
	}
	if !domain.Status(filtro.Status).IsValid() {
		filtro.Status = ""
	}

	pagina, err := uc.gw.ListarAgendamentos(ctx, ator.Auth, filtro)
	if err != nil {
		return nil, err
	}

	linhas := dto.Paginado[dto.AgendamentoLinha]{
		Data:   make([]dto.AgendamentoLinha, 0, len(pagina.Data)),
		Total:  pagina.Total,
		Pagina: pagina.Pagina,
		Limite: pagina.Limite,
	}

	out := &dto.ListaAgendamentos{
		Pagina:   linhas,
		Data:     data,
		Tecnicos: map[string][]usuario.Tecnico{},
	}

	precisaMotivos := false
	for _, ag := range pagina.Data {
		acoes := domain.CalcularAcoes(ag, ator.Permissao, ator.UsuarioID)
		out.Pagina.Data = append(out.Pagina.Data, dto.NovaLinha(ag, acoes))

		if acoes.PodeRegistrarResultado() {
			precisaMotivos = true
		}
		if acoes.PodeAtribuir {
			if _, ok := out.Tecnicos[ag.CoordenadoriaID]; !ok {
				out.Tecnicos[ag.CoordenadoriaID] = uc.tecnicos(ctx, ator, ag.CoordenadoriaID)
			}
		}
	}

	if precisaMotivos {
		ms, err := uc.gw.MotivosListaCompleta(ctx, ator.Auth)
		if err != nil {
			log.Printf("[LISTAR] motivos indisponíveis: %v", err)
		}
		out.Motivos = motivo.Ativos(ms)
	}

	return out, nil
}

// Falha ao buscar técnicos não derruba a lista: o formulário de
// atribuição apenas aparece sem opções.
func (uc *Listar) tecnicos(ctx context.Context, ator Ator, coordenadoriaID string) []usuario.Tecnico {
	ts, err := uc.gw.TecnicosPorCoordenadoria(ctx, ator.Auth, coordenadoriaID)
	if err != nil {
		log.Printf("[LISTAR] técnicos da coordenadoria %s: %v", coordenadoriaID, err)
		return nil
	}
	return ts
}
