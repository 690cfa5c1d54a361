package usuario

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

type CoordenadoriaRef struct {
	ID    string  `json:"id"`
	Sigla string  `json:"sigla"`
	Nome  *string `json:"nome,omitempty"`
}

type Usuario struct {
	ID              string            `json:"id"`
	Nome            string            `json:"nome"`
	Login           string            `json:"login"`
	Email           string            `json:"email"`
	Permissao       Permissao         `json:"permissao"`
	Avatar          string            `json:"avatar,omitempty"`
	Status          bool              `json:"status"`
	UltimoLogin     *time.Time        `json:"ultimoLogin,omitempty"`
	CriadoEm        *time.Time        `json:"criadoEm,omitempty"`
	AtualizadoEm    *time.Time        `json:"atualizadoEm,omitempty"`
	NomeSocial      string            `json:"nomeSocial,omitempty"`
	CoordenadoriaID string            `json:"coordenadoriaId,omitempty"`
	Coordenadoria   *CoordenadoriaRef `json:"coordenadoria,omitempty"`
}

func (u Usuario) NomeExibicao() string {
	return NomeExibicao(u.Nome, u.NomeSocial)
}

// NovoUsuario é o resultado da busca no diretório de rede pelo login.
type NovoUsuario struct {
	Login string `json:"login"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type Tecnico struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Login string `json:"login"`
}

type CriarUsuario struct {
	Nome            string    `json:"nome"`
	Login           string    `json:"login"`
	Email           string    `json:"email"`
	Permissao       Permissao `json:"permissao,omitempty"`
	CoordenadoriaID string    `json:"coordenadoriaId,omitempty"`
}

type AtualizarUsuario struct {
	Permissao       Permissao `json:"permissao,omitempty"`
	CoordenadoriaID string    `json:"coordenadoriaId,omitempty"`
	NomeSocial      string    `json:"nomeSocial,omitempty"`
	Status          *bool     `json:"status,omitempty"`
}

// --------------------------------------------------
// Nomes
// --------------------------------------------------

func NomeExibicao(nome, nomeSocial string) string {
	if strings.TrimSpace(nomeSocial) != "" {
		return nomeSocial
	}
	return nome
}

// Iniciais usa a primeira letra do primeiro e do último nome.
func Iniciais(nome string) string {
	partes := strings.Fields(nome)
	if len(partes) == 0 {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(partes[0])
	last, _ := utf8.DecodeRuneInString(partes[len(partes)-1])
	return strings.ToUpper(string(first) + string(last))
}

// NomeCurto reduz nomes longos para "Primeiro Último".
func NomeCurto(nome string) string {
	if utf8.RuneCountInString(nome) <= 20 {
		return nome
	}
	partes := strings.Fields(nome)
	if len(partes) < 2 {
		return nome
	}
	return partes[0] + " " + partes[len(partes)-1]
}

// ValidarVinculo confere as regras de permissão e coordenadoria de
// um cadastro feito por `by`.
func ValidarVinculo(by, alvo Permissao, coordenadoriaID string) error {
	if !alvo.IsValid() || !PodeAtribuirPermissao(by, alvo) {
		return httperr.ErrBusiness("permissao_invalida")
	}
	if RequerCoordenadoria(alvo) && strings.TrimSpace(coordenadoriaID) == "" {
		return httperr.ErrBusiness("coordenadoria_obrigatoria")
	}
	return nil
}
