package httperr

import "errors"

type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessDetail(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// mensagens exibidas ao usuário para cada código de negócio
var businessMessages = map[string]string{
	"forbidden":                 "Você não tem permissão para realizar esta ação.",
	"sem_tecnico":               "O agendamento ainda não possui técnico atribuído.",
	"sem_coordenadoria":         "O agendamento não possui coordenadoria.",
	"invalid_state":             "O status atual do agendamento não permite esta ação.",
	"motivo_obrigatorio":        "Selecione um motivo.",
	"tecnico_invalido":          "O técnico selecionado não pertence à coordenadoria do agendamento.",
	"sem_participantes":         "O agendamento não possui e-mail do munícipe nem técnico para convidar.",
	"coordenadoria_obrigatoria": "Selecione a coordenadoria do usuário.",
	"permissao_invalida":        "Permissão inválida para o seu perfil.",
	"arquivo_ausente":           "Por favor, selecione um arquivo",
	"arquivo_vazio":             "O arquivo não pode estar vazio",
	"arquivo_grande":            "Arquivo deve ter no máximo 10MB",
	"arquivo_tipo":              "Apenas arquivos Excel (.xlsx, .xls) são permitidos",
	"colunas_ausentes":          "A planilha não possui as colunas obrigatórias:",
	"planilha_ilegivel":         "Não foi possível ler a planilha.",
	"campos_obrigatorios":       "Preencha os campos obrigatórios.",
	"data_invalida":             "Data/hora inválida.",
	"sigla_curta":               "A sigla deve ter no mínimo 2 caracteres.",
	"email_invalido":            "E-mail inválido.",
	"texto_obrigatorio":         "O texto é obrigatório.",
}

// BusinessMessage devolve o texto em português de um código de negócio.
func BusinessMessage(code string) string {
	if msg, ok := businessMessages[code]; ok {
		return msg
	}
	return "Não foi possível concluir a operação."
}
