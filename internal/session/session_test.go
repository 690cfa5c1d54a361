package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
)

// backendToken simula o access_token do backend, assinado com uma
// chave que este serviço não conhece.
func backendToken(t *testing.T, sub string, p usuario.Permissao, exp time.Time) string {
	t.Helper()
	c := BackendClaims{
		Nome:      "Maria Souza",
		Login:     "d123456",
		Email:     "maria@prefeitura.sp.gov.br",
		Permissao: p,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("segredo-do-backend"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestIssueAndParse(t *testing.T) {
	now := time.Now()
	at := backendToken(t, "u1", usuario.TEC, now.Add(time.Hour))

	raw, claims, err := Issue("s3cr3t", at, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if claims.Subject != "u1" || claims.AccessToken != at {
		t.Fatalf("claims = %+v", claims)
	}

	parsed, err := Parse("s3cr3t", raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Permissao != usuario.TEC || parsed.Nome != "Maria Souza" {
		t.Errorf("parsed = %+v", parsed)
	}
	if !parsed.ExpiresAt.Time.Equal(claims.ExpiresAt.Time) {
		t.Error("sessão deve expirar junto com o token do backend")
	}
}

func TestIssueKeepsAvatarOutOfCookie(t *testing.T) {
	now := time.Now()
	img := "data:image/png;base64," + strings.Repeat("A", 3000)

	c := BackendClaims{
		Nome:      "Maria Souza",
		Permissao: usuario.TEC,
		Avatar:    img,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	at, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("segredo-do-backend"))
	if err != nil {
		t.Fatal(err)
	}

	raw, _, err := Issue("s3cr3t", at, now)
	if err != nil {
		t.Fatal(err)
	}

	// o token do backend entra uma vez só, codificado em base64
	if limite := len(at)*4/3 + 1024; len(raw) > limite {
		t.Errorf("cookie com %d bytes, limite %d", len(raw), limite)
	}

	parsed, err := Parse("s3cr3t", raw)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.TemAvatar {
		t.Error("TemAvatar = false")
	}
	if parsed.Avatar() != img {
		t.Error("Avatar() deveria vir do token do backend")
	}
}

func TestParseRejects(t *testing.T) {
	now := time.Now()
	raw, _, err := Issue("s3cr3t", backendToken(t, "u1", usuario.ADM, now.Add(time.Hour)), now)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"segredo errado", "outro", raw},
		{"lixo", "s3cr3t", "abc.def.ghi"},
		{"vazio", "s3cr3t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.secret, tt.raw); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestIssueExpiredBackendToken(t *testing.T) {
	now := time.Now()
	_, _, err := Issue("s", backendToken(t, "u1", usuario.ADM, now.Add(-time.Minute)), now)
	if !errors.Is(err, ErrBackendToken) {
		t.Errorf("err = %v", err)
	}
}

func TestImpersonation(t *testing.T) {
	tests := []struct {
		name        string
		real        usuario.Permissao
		impersonate string
		want        usuario.Permissao
		header      string
	}{
		{"dev como tec", usuario.DEV, "TEC", usuario.TEC, "TEC"},
		{"dev sem escolha", usuario.DEV, "", usuario.DEV, ""},
		{"dev opção inválida", usuario.DEV, "DEV", usuario.DEV, ""},
		{"adm não personifica", usuario.ADM, "TEC", usuario.ADM, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&Claims{Permissao: tt.real, AccessToken: "tok"}, tt.impersonate)
			if s.Permissao() != tt.want {
				t.Errorf("Permissao() = %s, want %s", s.Permissao(), tt.want)
			}
			if s.PermissaoReal() != tt.real {
				t.Errorf("PermissaoReal() = %s", s.PermissaoReal())
			}
			auth := s.Auth()
			if auth.Impersonate != tt.header || auth.Token != "tok" {
				t.Errorf("Auth() = %+v", auth)
			}
		})
	}
}
