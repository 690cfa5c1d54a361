package routes

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/flash"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/cache"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/storage"
	"github.com/BruksfildServices01/agendamento-smul/internal/planilha"
	"github.com/BruksfildServices01/agendamento-smul/internal/session"
)

func backendToken(t *testing.T, p usuario.Permissao) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       "u1",
		"nome":      "Fulano de Tal",
		"login":     "d000001",
		"permissao": string(p),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("chave-do-backend"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// fakeBackend responde listas vazias para tudo que não for tratado
// pelo teste.
func fakeBackend(t *testing.T, h func(w http.ResponseWriter, r *http.Request) bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h != nil && h(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "lista-completa") ||
			strings.Contains(r.URL.Path, "buscar-tecnicos-por-coordenadoria") {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[],"total":0,"pagina":1,"limite":10}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testApp struct {
	cfg    *config.Config
	router *gin.Engine
}

func newTestApp(t *testing.T, backend *httptest.Server) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		BasePath:      "/agendamento",
		AppEnv:        "development",
		SessionSecret: "segredo",
		SessionCookie: "agendamento_sessao",
		LoginRate:     100,
		LoginBurst:    100,
	}

	dispatcher := audit.NewDispatcher(audit.New(nil))
	t.Cleanup(dispatcher.Close)

	store := cache.NewMemory()
	r := gin.New()
	err := RegisterRoutes(r, cfg, Deps{
		API:      apiclient.NewCached(apiclient.New(backend.URL, 5*time.Second), store, time.Minute),
		Cache:    store,
		Archiver: storage.Nop{},
		Audit:    dispatcher,
		HTTP:     backend.Client(),
	})
	if err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return &testApp{cfg: cfg, router: r}
}

func (a *testApp) sessionCookie(t *testing.T, p usuario.Permissao) *http.Cookie {
	t.Helper()
	raw, _, err := session.Issue(a.cfg.SessionSecret, backendToken(t, p), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: a.cfg.SessionCookie, Value: raw}
}

func (a *testApp) get(t *testing.T, path string, p usuario.Permissao) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if p != "" {
		req.AddCookie(a.sessionCookie(t, p))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, p usuario.Permissao) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if p != "" {
		req.AddCookie(a.sessionCookie(t, p))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, nil))

	w := app.get(t, "/agendamento/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["auditoria"] != "desativada" {
		t.Errorf("body = %v", body)
	}
}

func TestLogin(t *testing.T) {
	t.Run("sucesso grava cookie e vai para a home", func(t *testing.T) {
		backend := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
			if r.URL.Path != "/login" {
				return false
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": backendToken(t, usuario.ADM)})
			return true
		})
		app := newTestApp(t, backend)

		w := app.postForm(t, "/agendamento/login", url.Values{"login": {"d000001"}, "senha": {"x"}}, "")
		if w.Code != http.StatusSeeOther {
			t.Fatalf("code = %d body = %s", w.Code, w.Body.String())
		}
		if loc := w.Header().Get("Location"); loc != "/agendamento/" {
			t.Errorf("Location = %q", loc)
		}
		if !strings.Contains(w.Header().Get("Set-Cookie"), "agendamento_sessao=") {
			t.Errorf("Set-Cookie = %q", w.Header().Get("Set-Cookie"))
		}
	})

	t.Run("credenciais inválidas", func(t *testing.T) {
		backend := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
			if r.URL.Path != "/login" {
				return false
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Credenciais incorretas"}`))
			return true
		})
		app := newTestApp(t, backend)

		w := app.postForm(t, "/agendamento/login", url.Values{"login": {"d000001"}, "senha": {"errada"}}, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Usuário ou senha inválidos.") {
			t.Error("mensagem de erro ausente")
		}
	})

	t.Run("campos vazios", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t, nil))

		w := app.postForm(t, "/agendamento/login", url.Values{"login": {" "}}, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("code = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Informe usuário e senha.") {
			t.Error("mensagem de erro ausente")
		}
	})
}

func TestHomeSemSessao(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, nil))

	w := app.get(t, "/agendamento/", "")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/agendamento/login" {
		t.Errorf("code=%d location=%s", w.Code, w.Header().Get("Location"))
	}
}

func TestMenuPorPermissao(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, nil))

	tests := []struct {
		perm      usuario.Permissao
		cadastros bool
		dashboard bool
	}{
		{usuario.ADM, true, true},
		{usuario.Coordenador, false, true},
		{usuario.TEC, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.perm), func(t *testing.T) {
			w := app.get(t, "/agendamento/", tt.perm)
			if w.Code != http.StatusOK {
				t.Fatalf("code = %d body = %s", w.Code, w.Body.String())
			}
			body := w.Body.String()

			if got := strings.Contains(body, `href="/agendamento/coordenadorias"`); got != tt.cadastros {
				t.Errorf("link de coordenadorias = %v, want %v", got, tt.cadastros)
			}
			if got := strings.Contains(body, `href="/agendamento/dashboard"`); got != tt.dashboard {
				t.Errorf("link do dashboard = %v, want %v", got, tt.dashboard)
			}
		})
	}
}

func TestPaginasRestritas(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, nil))

	for _, path := range []string{
		"/agendamento/coordenadorias",
		"/agendamento/importar-planilha",
		"/agendamento/registro-acoes",
		"/agendamento/usuarios",
	} {
		t.Run(path, func(t *testing.T) {
			w := app.get(t, path, usuario.TEC)
			if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/agendamento/" {
				t.Errorf("code=%d location=%s", w.Code, w.Header().Get("Location"))
			}
		})
	}
}

func TestDashboardSemPermissao(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, nil))

	w := app.get(t, "/agendamento/dashboard", usuario.USR)
	if w.Code != http.StatusForbidden {
		t.Fatalf("code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Você não tem permissão para acessar o dashboard.") {
		t.Error("mensagem ausente")
	}
}

func TestRegistroAcoesSemBanco(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, nil))

	w := app.get(t, "/agendamento/registro-acoes", usuario.ADM)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", w.Code, w.Body.String())
	}
}

func TestTecnicosJSON(t *testing.T) {
	t.Run("lista", func(t *testing.T) {
		backend := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
			if r.URL.Path != "/usuarios/buscar-tecnicos-por-coordenadoria/c1" {
				return false
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"t1","nome":"Técnica Um"}]`))
			return true
		})
		app := newTestApp(t, backend)

		w := app.get(t, "/agendamento/api/tecnicos/c1", usuario.ADM)
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d body = %s", w.Code, w.Body.String())
		}

		var body struct {
			Dados []map[string]any `json:"dados"`
			Total int              `json:"total"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Total != 1 || len(body.Dados) != 1 {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("sem sessão responde 401", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t, nil))

		w := app.get(t, "/agendamento/api/tecnicos/c1", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("code = %d", w.Code)
		}
	})

	t.Run("usuário comum não lê o cache", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t, nil))

		if w := app.get(t, "/agendamento/api/tecnicos/c1", usuario.ADM); w.Code != http.StatusOK {
			t.Fatalf("adm code = %d", w.Code)
		}

		for _, p := range []usuario.Permissao{usuario.USR, usuario.TEC} {
			w := app.get(t, "/agendamento/api/tecnicos/c1", p)
			if w.Code != http.StatusForbidden {
				t.Fatalf("%s code = %d body = %s", p, w.Code, w.Body.String())
			}
			var body struct {
				ErrorCode string `json:"error_code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.ErrorCode != "forbidden" {
				t.Errorf("%s error_code = %q", p, body.ErrorCode)
			}
		}
	})
}

// ======================================================
// AÇÕES DE FORMULÁRIO
// ======================================================

type chamada struct {
	Method string
	Path   string
	Body   string
}

// gravador guarda as chamadas feitas ao backend falso.
type gravador struct {
	mu       sync.Mutex
	chamadas []chamada
}

func (g *gravador) anotar(r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chamadas = append(g.chamadas, chamada{Method: r.Method, Path: r.URL.Path, Body: string(b)})
}

func (g *gravador) achar(path string) (chamada, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.chamadas {
		if c.Path == path {
			return c, true
		}
	}
	return chamada{}, false
}

func cookieDe(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashDe(t *testing.T, w *httptest.ResponseRecorder) flash.Flash {
	t.Helper()
	c := cookieDe(w, flash.CookieName)
	if c == nil {
		t.Fatal("nenhum aviso gravado")
	}
	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		t.Fatal(err)
	}
	var f flash.Flash
	if err := json.Unmarshal(b, &f); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestPersonificar(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, nil))

	tests := []struct {
		name      string
		perm      usuario.Permissao
		escolha   string
		tipo      flash.Tipo
		cookie    bool
		valor     string
		encerrado bool
	}{
		{"adm não personifica", usuario.ADM, "TEC", flash.Erro, false, "", false},
		{"dev escolhe técnico", usuario.DEV, "TEC", flash.Sucesso, true, "TEC", false},
		{"dev volta ao perfil", usuario.DEV, "", flash.Sucesso, true, "", true},
		{"opção inválida", usuario.DEV, "XYZ", flash.Erro, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.postForm(t, "/agendamento/personificar", url.Values{"permissao": {tt.escolha}}, tt.perm)
			if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/agendamento/" {
				t.Fatalf("code=%d location=%s", w.Code, w.Header().Get("Location"))
			}

			if f := flashDe(t, w); f.Tipo != tt.tipo {
				t.Errorf("aviso = %+v", f)
			}

			c := cookieDe(w, session.ImpersonateCookie)
			if (c != nil) != tt.cookie {
				t.Fatalf("cookie de personificação = %v, want %v", c, tt.cookie)
			}
			if c == nil {
				return
			}
			if c.Value != tt.valor {
				t.Errorf("valor = %q, want %q", c.Value, tt.valor)
			}
			if tt.encerrado && c.MaxAge >= 0 {
				t.Errorf("MaxAge = %d, cookie deveria expirar", c.MaxAge)
			}
		})
	}
}

func TestCadastroToggle(t *testing.T) {
	tests := []struct {
		name   string
		ativo  string
		method string
		path   string
		body   string
	}{
		{"ativo é desativado", "true", http.MethodDelete, "/coordenadorias/desativar/c1", ""},
		{"inativo volta", "false", http.MethodPatch, "/coordenadorias/atualizar/c1", `"status":true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &gravador{}
			app := newTestApp(t, fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
				g.anotar(r)
				return false
			}))

			w := app.postForm(t, "/agendamento/coordenadorias/c1/desativar", url.Values{"ativo": {tt.ativo}}, usuario.ADM)
			if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/agendamento/coordenadorias" {
				t.Fatalf("code=%d location=%s", w.Code, w.Header().Get("Location"))
			}
			if f := flashDe(t, w); f.Tipo != flash.Sucesso {
				t.Errorf("aviso = %+v", f)
			}

			c, ok := g.achar(tt.path)
			if !ok {
				t.Fatalf("backend não recebeu %s: %+v", tt.path, g.chamadas)
			}
			if c.Method != tt.method {
				t.Errorf("method = %s, want %s", c.Method, tt.method)
			}
			if !strings.Contains(c.Body, tt.body) {
				t.Errorf("body = %s", c.Body)
			}
		})
	}
}

func TestUsuarioNovoNaoEncontrado(t *testing.T) {
	app := newTestApp(t, fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path != "/usuarios/buscar-novo/d999999" {
			return false
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Usuário não existe no AD","statusCode":404}`))
		return true
	}))

	w := app.get(t, "/agendamento/usuarios/novo?login=d999999", usuario.ADM)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Usuário não encontrado.") {
		t.Error("mensagem ausente")
	}
}

func TestCriarUsuarioRegras(t *testing.T) {
	tests := []struct {
		name  string
		perm  usuario.Permissao
		form  url.Values
		aviso string
	}{
		{
			"ponto focal não atribui adm",
			usuario.PontoFocal,
			url.Values{"nome": {"Fulana"}, "login": {"d000002"}, "permissao": {"ADM"}, "coordenadoriaId": {"c1"}},
			"Permissão inválida para o seu perfil.",
		},
		{
			"técnico sem coordenadoria",
			usuario.ADM,
			url.Values{"nome": {"Fulana"}, "login": {"d000002"}, "permissao": {"TEC"}},
			"Selecione a coordenadoria do usuário.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &gravador{}
			app := newTestApp(t, fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
				g.anotar(r)
				return false
			}))

			w := app.postForm(t, "/agendamento/usuarios", tt.form, tt.perm)
			if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/agendamento/usuarios/novo?login=d000002" {
				t.Fatalf("code=%d location=%s", w.Code, w.Header().Get("Location"))
			}

			f := flashDe(t, w)
			if f.Tipo != flash.Erro || f.Descricao != tt.aviso {
				t.Errorf("aviso = %+v", f)
			}
			if _, ok := g.achar("/usuarios/criar"); ok {
				t.Error("backend não deveria receber o cadastro")
			}
		})
	}
}

func uploadPlanilha(t *testing.T, app *testApp, nome string, conteudo []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("arquivo", nome)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(conteudo); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/agendamento/importar-planilha", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(app.sessionCookie(t, usuario.ADM))

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestImportarPlanilha(t *testing.T) {
	lote, err := planilha.Escrever(planilha.ColunasObrigatorias, [][]string{
		{"123", "Maria", "1", "12345678901", "6068.2025/0001", "10/03/2025 09:00", "vistoria"},
		{"456", "João", "2", "", "6068.2025/0002", "11/03/2025 10:00", ""},
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("sucesso volta para a lista", func(t *testing.T) {
		g := &gravador{}
		app := newTestApp(t, fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
			if r.URL.Path != "/agendamentos/importar-planilha" {
				return false
			}
			g.anotar(r)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"importados":2,"erros":0}`))
			return true
		}))

		w := uploadPlanilha(t, app, "lote.xlsx", lote)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/agendamento/" {
			t.Fatalf("code=%d location=%s", w.Code, w.Header().Get("Location"))
		}

		f := flashDe(t, w)
		if f.Tipo != flash.Sucesso || f.Descricao != "2 agendamento(s) importado(s) com sucesso." {
			t.Errorf("aviso = %+v", f)
		}

		c, ok := g.achar("/agendamentos/importar-planilha")
		if !ok {
			t.Fatal("backend não recebeu a planilha")
		}
		if c.Method != http.MethodPost || !strings.Contains(c.Body, `name="arquivo"; filename="lote.xlsx"`) {
			t.Errorf("chamada = %s %.200s", c.Method, c.Body)
		}
	})

	t.Run("tipo inválido fica na página", func(t *testing.T) {
		g := &gravador{}
		app := newTestApp(t, fakeBackend(t, func(w http.ResponseWriter, r *http.Request) bool {
			g.anotar(r)
			return false
		}))

		w := uploadPlanilha(t, app, "notas.txt", []byte("texto"))
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/agendamento/importar-planilha" {
			t.Fatalf("code=%d location=%s", w.Code, w.Header().Get("Location"))
		}

		f := flashDe(t, w)
		if f.Tipo != flash.Erro || f.Descricao != "Apenas arquivos Excel (.xlsx, .xls) são permitidos" {
			t.Errorf("aviso = %+v", f)
		}
		if _, ok := g.achar("/agendamentos/importar-planilha"); ok {
			t.Error("arquivo inválido não deveria chegar ao backend")
		}
	})
}
