package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/coordenadoria"
	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/cache"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListarAgendamentosQueryAndHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agendamentos/buscar-tudo" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get(HeaderImpersonate); got != "TEC" {
			t.Errorf("impersonate = %q", got)
		}

		q := r.URL.Query()
		if q.Get("pagina") != "2" || q.Get("limite") != "10" {
			t.Errorf("paginação = %v", q)
		}
		if q.Get("dataInicio") != "2025-03-10" || q.Get("status") != "AGENDADO" {
			t.Errorf("filtros = %v", q)
		}
		if q.Has("busca") {
			t.Error("busca vazia não deveria ser enviada")
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data":   []map[string]any{{"id": "a1", "status": "AGENDADO", "dataHora": "2025-03-10T09:00:00.000Z"}},
			"total":  11,
			"pagina": 2,
			"limite": 10,
		})
	})

	out, err := c.ListarAgendamentos(context.Background(), Auth{Token: "tok", Impersonate: "TEC"}, agendamento.Filtro{
		Pagina:     2,
		Status:     "AGENDADO",
		DataInicio: "2025-03-10",
		DataFim:    "2025-03-10",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Data) != 1 || out.Data[0].ID != "a1" {
		t.Fatalf("data = %+v", out.Data)
	}
	if out.TotalPaginas() != 2 || out.TemProxima() {
		t.Errorf("TotalPaginas=%d TemProxima=%v", out.TotalPaginas(), out.TemProxima())
	}
}

func TestDecodeErrorFormats(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"string", 400, `{"message":"Processo já cadastrado","statusCode":400}`, "Processo já cadastrado"},
		{"lista", 400, `{"message":["sigla curta","email inválido"],"statusCode":400}`, "sigla curta; email inválido"},
		{"ilegivel", 500, `<html>`, "Erro no servidor (500)"},
		{"sessao", 401, `{"message":"Unauthorized"}`, "Sua sessão expirou. Por favor, faça login novamente."},
		{"proibido", 403, `{"message":"Forbidden"}`, "Você não tem permissão para realizar esta ação."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.BuscarAgendamento(context.Background(), Auth{Token: "t"}, "x")
			if err == nil {
				t.Fatal("esperava erro")
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("status esperado %d, err = %v", tt.status, err)
			}
			if got := httperr.Message(err); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1/", time.Second)

	_, err := c.AgendamentosDoDia(context.Background(), Auth{})

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("esperava TransportError, got %v", err)
	}
	if httperr.Message(err) != "Não foi possível conectar ao servidor." {
		t.Errorf("Message() = %q", httperr.Message(err))
	}
	if httperr.Status(err) != http.StatusBadGateway {
		t.Errorf("Status() = %d", httperr.Status(err))
	}
}

func TestImportarPlanilhaMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("multipart: %v", err)
		}
		if got := r.FormValue("coordenadoriaId"); got != "c1" {
			t.Errorf("coordenadoriaId = %q", got)
		}
		f, h, err := r.FormFile("arquivo")
		if err != nil {
			t.Fatalf("arquivo: %v", err)
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if h.Filename != "lote.xlsx" || string(b) != "conteudo" {
			t.Errorf("arquivo = %s %q", h.Filename, b)
		}
		writeJSON(w, http.StatusCreated, map[string]int{"importados": 3, "erros": 1})
	})

	res, err := c.ImportarPlanilha(context.Background(), Auth{Token: "t"}, Arquivo{
		Nome:     "lote.xlsx",
		Conteudo: []byte("conteudo"),
	}, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Importados != 3 || res.Erros != 1 {
		t.Errorf("resultado = %+v", res)
	}
}

func TestLoginSemToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Login != "d123" || body.Senha != "x" {
			t.Errorf("body = %+v", body)
		}
		writeJSON(w, http.StatusOK, map[string]string{})
	})

	if _, err := c.Login(context.Background(), "d123", "x"); err == nil {
		t.Fatal("login sem access_token deveria falhar")
	}
}

func TestCachedListaCompletaAndInvalidation(t *testing.T) {
	var hits atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/coordenadorias/lista-completa":
			hits.Add(1)
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "c1", "sigla": "GTEC", "status": true}})
		case strings.HasPrefix(r.URL.Path, "/coordenadorias/atualizar/"):
			writeJSON(w, http.StatusOK, map[string]any{"id": "c1", "sigla": "GTEC2", "status": true})
		default:
			http.NotFound(w, r)
		}
	})

	cached := NewCached(c, cache.NewMemory(), time.Minute)
	ctx := context.Background()
	auth := Auth{Token: "t"}

	for i := 0; i < 3; i++ {
		list, err := cached.CoordenadoriasListaCompleta(ctx, auth)
		if err != nil || len(list) != 1 {
			t.Fatalf("lista = %v err = %v", list, err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("backend chamado %d vezes, esperava 1", hits.Load())
	}

	if _, err := cached.AtualizarCoordenadoria(ctx, auth, "c1", coordenadoria.Salvar{Sigla: "GTEC2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := cached.CoordenadoriasListaCompleta(ctx, auth); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("após escrita esperava nova leitura, hits = %d", hits.Load())
	}
}
