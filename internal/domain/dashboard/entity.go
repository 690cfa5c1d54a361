package dashboard

type PorMes struct {
	Mes   int `json:"mes"`
	Ano   int `json:"ano"`
	Total int `json:"total"`
}

type PorAno struct {
	Ano   int `json:"ano"`
	Total int `json:"total"`
}

type PorRotulo struct {
	Label string `json:"label"`
	Total int    `json:"total"`
}

type MotivoNaoRealizacao struct {
	MotivoID    *string `json:"motivoId"`
	MotivoTexto string  `json:"motivoTexto"`
	Total       int     `json:"total"`
}

type Dashboard struct {
	TotalGeral           int                   `json:"totalGeral"`
	Realizados           int                   `json:"realizados"`
	NaoRealizados        int                   `json:"naoRealizados"`
	ApenasNaoRealizado   int                   `json:"apenasNaoRealizado"`
	DiasComAgendamentos  int                   `json:"diasComAgendamentos"`
	PorMes               []PorMes              `json:"porMes"`
	PorAno               []PorAno              `json:"porAno"`
	PorDia               []PorRotulo           `json:"porDia"`
	PorSemana            []PorRotulo           `json:"porSemana"`
	MotivosNaoRealizacao []MotivoNaoRealizacao `json:"motivosNaoRealizacao"`
}
