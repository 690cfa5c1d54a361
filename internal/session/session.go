package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
)

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrBackendToken = errors.New("invalid_backend_token")
)

// duração usada quando o token do backend não informa exp
const defaultTTL = 8 * time.Hour

// BackendClaims é o payload do access_token emitido pelo backend.
type BackendClaims struct {
	Nome       string            `json:"nome"`
	Login      string            `json:"login"`
	Email      string            `json:"email"`
	NomeSocial string            `json:"nomeSocial,omitempty"`
	Permissao  usuario.Permissao `json:"permissao"`
	Avatar     string            `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// Claims é o conteúdo do cookie de sessão: os dados do usuário mais
// o token do backend, assinados com SESSION_SECRET. A imagem do
// avatar fica só dentro do token do backend; o cookie guarda apenas
// se ela existe.
type Claims struct {
	Nome        string            `json:"nome"`
	Login       string            `json:"login"`
	Email       string            `json:"email"`
	NomeSocial  string            `json:"nomeSocial,omitempty"`
	Permissao   usuario.Permissao `json:"permissao"`
	TemAvatar   bool              `json:"av,omitempty"`
	AccessToken string            `json:"at"`
	jwt.RegisteredClaims
}

// ReadBackendToken lê as claims sem verificar a assinatura: o token
// acabou de chegar do backend pela conexão de login.
func ReadBackendToken(raw string) (*BackendClaims, error) {
	claims := &BackendClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Join(ErrBackendToken, err)
	}
	if claims.Subject == "" {
		return nil, ErrBackendToken
	}
	return claims, nil
}

// Issue cria o cookie de sessão a partir do access_token do backend.
func Issue(secret, accessToken string, now time.Time) (string, *Claims, error) {
	bc, err := ReadBackendToken(accessToken)
	if err != nil {
		return "", nil, err
	}

	exp := now.Add(defaultTTL)
	if bc.ExpiresAt != nil {
		exp = bc.ExpiresAt.Time
	}
	if !exp.After(now) {
		return "", nil, ErrBackendToken
	}

	claims := &Claims{
		Nome:        bc.Nome,
		Login:       bc.Login,
		Email:       bc.Email,
		NomeSocial:  bc.NomeSocial,
		Permissao:   bc.Permissao,
		TemAvatar:   bc.Avatar != "",
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   bc.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Avatar lê a imagem (URL ou data URI) do token do backend.
func (c *Claims) Avatar() string {
	bc, err := ReadBackendToken(c.AccessToken)
	if err != nil {
		return ""
	}
	return bc.Avatar
}

func Parse(secret, raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ======================================================
// SESSÃO DA REQUISIÇÃO
// ======================================================

type Session struct {
	*Claims
	impersonate usuario.Permissao
}

// New aplica a personificação apenas quando o usuário real é DEV e a
// opção é uma das permitidas.
func New(c *Claims, impersonate string) *Session {
	s := &Session{Claims: c}
	p := usuario.Permissao(impersonate)
	if c.Permissao == usuario.DEV && usuario.PodePersonificarComo(p) {
		s.impersonate = p
	}
	return s
}

func (s *Session) UsuarioID() string {
	return s.Subject
}

func (s *Session) PermissaoReal() usuario.Permissao {
	return s.Claims.Permissao
}

// Permissao é a permissão efetiva, usada em toda regra de tela.
func (s *Session) Permissao() usuario.Permissao {
	if s.impersonate != "" {
		return s.impersonate
	}
	return s.Claims.Permissao
}

func (s *Session) PodePersonificar() bool {
	return s.Claims.Permissao == usuario.DEV
}

func (s *Session) Personificacao() usuario.Permissao {
	return s.impersonate
}

func (s *Session) NomeExibicao() string {
	return usuario.NomeExibicao(s.Nome, s.NomeSocial)
}

// Auth são as credenciais repassadas em cada chamada ao backend.
func (s *Session) Auth() apiclient.Auth {
	return apiclient.Auth{
		Token:       s.AccessToken,
		Impersonate: string(s.impersonate),
	}
}
