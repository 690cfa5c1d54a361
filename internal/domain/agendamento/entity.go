package agendamento

import "time"

type MotivoRef struct {
	ID    string `json:"id"`
	Texto string `json:"texto"`
}

type CoordenadoriaRef struct {
	ID    string `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome,omitempty"`
}

type TecnicoRef struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Login string `json:"login"`
}

type TipoRef struct {
	ID    string `json:"id,omitempty"`
	Texto string `json:"texto"`
}

// Agendamento espelha o registro do backend. Datas chegam em UTC,
// mas representam o horário local (ver timezone.AsLocal).
type Agendamento struct {
	ID              string     `json:"id"`
	Municipe        string     `json:"municipe,omitempty"`
	RG              string     `json:"rg,omitempty"`
	CPF             string     `json:"cpf,omitempty"`
	Processo        string     `json:"processo,omitempty"`
	DataHora        time.Time  `json:"dataHora"`
	DataFim         *time.Time `json:"dataFim,omitempty"`
	Duracao         *int       `json:"duracao,omitempty"`
	Importado       bool       `json:"importado"`
	Legado          bool       `json:"legado"`
	Resumo          string     `json:"resumo,omitempty"`
	MotivoID        string     `json:"motivoId,omitempty"`
	CoordenadoriaID string     `json:"coordenadoriaId,omitempty"`
	TecnicoID       string     `json:"tecnicoId,omitempty"`
	TecnicoRF       string     `json:"tecnicoRF,omitempty"`
	Email           string     `json:"email,omitempty"`
	Status          Status     `json:"status"`
	CriadoEm        time.Time  `json:"criadoEm"`
	AtualizadoEm    time.Time  `json:"atualizadoEm"`

	Motivo          *MotivoRef        `json:"motivo,omitempty"`
	Coordenadoria   *CoordenadoriaRef `json:"coordenadoria,omitempty"`
	Tecnico         *TecnicoRef       `json:"tecnico,omitempty"`
	TipoAgendamento *TipoRef          `json:"tipoAgendamento,omitempty"`
}

func (a Agendamento) SemTecnico() bool {
	return a.Tecnico == nil
}

func (a Agendamento) NomeCoordenadoria() string {
	if a.Coordenadoria == nil {
		return ""
	}
	if a.Coordenadoria.Nome != "" {
		return a.Coordenadoria.Nome
	}
	return a.Coordenadoria.Sigla
}

// Criar é o corpo de agendamentos/criar. Datas seguem o relógio
// gravado (ISO em UTC).
type Criar struct {
	Municipe        string `json:"municipe,omitempty"`
	RG              string `json:"rg,omitempty"`
	CPF             string `json:"cpf,omitempty"`
	Processo        string `json:"processo,omitempty"`
	DataHora        string `json:"dataHora"`
	DataFim         string `json:"dataFim,omitempty"`
	Duracao         *int   `json:"duracao,omitempty"`
	Resumo          string `json:"resumo,omitempty"`
	MotivoID        string `json:"motivoId,omitempty"`
	CoordenadoriaID string `json:"coordenadoriaId,omitempty"`
	TecnicoID       string `json:"tecnicoId,omitempty"`
	TecnicoRF       string `json:"tecnicoRF,omitempty"`
	Email           string `json:"email,omitempty"`
}

// Atualizar é o corpo parcial de agendamentos/atualizar/{id}.
type Atualizar struct {
	Municipe        string `json:"municipe,omitempty"`
	RG              string `json:"rg,omitempty"`
	CPF             string `json:"cpf,omitempty"`
	Processo        string `json:"processo,omitempty"`
	DataHora        string `json:"dataHora,omitempty"`
	DataFim         string `json:"dataFim,omitempty"`
	Duracao         *int   `json:"duracao,omitempty"`
	Resumo          string `json:"resumo,omitempty"`
	MotivoID        string `json:"motivoId,omitempty"`
	CoordenadoriaID string `json:"coordenadoriaId,omitempty"`
	TecnicoID       string `json:"tecnicoId,omitempty"`
	TecnicoRF       string `json:"tecnicoRF,omitempty"`
	Email           string `json:"email,omitempty"`
	Status          Status `json:"status,omitempty"`
}

// Filtro corresponde aos parâmetros de agendamentos/buscar-tudo.
type Filtro struct {
	Pagina          int
	Limite          int
	Busca           string
	Status          string
	DataInicio      string
	DataFim         string
	CoordenadoriaID string
	TecnicoID       string
}

type ResultadoImportacao struct {
	Importados int `json:"importados"`
	Erros      int `json:"erros"`
}
