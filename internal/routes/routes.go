package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-smul/internal/apiclient"
	"github.com/BruksfildServices01/agendamento-smul/internal/audit"
	"github.com/BruksfildServices01/agendamento-smul/internal/config"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/flash"
	"github.com/BruksfildServices01/agendamento-smul/internal/handlers"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/agendamento-smul/internal/infra/repository"
	"github.com/BruksfildServices01/agendamento-smul/internal/infra/storage"
	"github.com/BruksfildServices01/agendamento-smul/internal/middleware"
	"github.com/BruksfildServices01/agendamento-smul/internal/session"
	ucAgendamento "github.com/BruksfildServices01/agendamento-smul/internal/usecase/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/web"
)

// Deps são as dependências montadas no main. DB pode ser nil (sem
// auditoria em banco).
type Deps struct {
	DB       *gorm.DB
	API      *apiclient.Cached
	Cache    cache.Store
	Archiver storage.Archiver
	Audit    *audit.Dispatcher
	HTTP     *http.Client
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) error {

	// ======================================================
	// 🎨 TEMPLATES
	// ======================================================
	tmpl, err := web.Templates(cfg.Path)
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	cookies := session.Cookies{Name: cfg.SessionCookie, Path: cfg.BasePath, Secure: cfg.CookieSecure}
	render := handlers.NewRenderer(cfg, flash.Store{Path: cfg.BasePath, Secure: cfg.CookieSecure}, cookies)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)

	var auditRepo *infraRepo.AuditLogGormRepository
	if deps.DB != nil {
		auditRepo = infraRepo.NewAuditLogGormRepository(deps.DB)
	}

	// ======================================================
	// 🧠 USE CASES — AGENDAMENTOS
	// ======================================================
	listarUC := ucAgendamento.NewListar(deps.API)
	criarUC := ucAgendamento.NewCriar(deps.API, deps.Audit)
	atribuirUC := ucAgendamento.NewAtribuirTecnico(deps.API, deps.Audit)
	confirmarUC := ucAgendamento.NewConfirmarAtendimento(deps.API, deps.Audit)
	agendarReuniaoUC := ucAgendamento.NewAgendarReuniao(deps.API)
	confirmarReuniaoUC := ucAgendamento.NewConfirmarReuniao(deps.API, deps.Audit)
	excluirUC := ucAgendamento.NewExcluir(deps.API, deps.Audit)
	exportarUC := ucAgendamento.NewExportar(deps.API)
	importarUC := ucAgendamento.NewImportarPlanilha(deps.API, deps.Archiver, deps.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(deps.DB)
	authHandler := handlers.NewAuthHandler(cfg, deps.API, cookies, render, deps.Audit)

	agendamentoHandler := handlers.NewAgendamentoHandler(
		deps.API,
		render,
		listarUC,
		criarUC,
		atribuirUC,
		confirmarUC,
		agendarReuniaoUC,
		confirmarReuniaoUC,
		excluirUC,
		exportarUC,
	)

	importarHandler := handlers.NewImportarHandler(deps.API, render, importarUC)
	dashboardHandler := handlers.NewDashboardHandler(deps.API, render)
	usuarioHandler := handlers.NewUsuarioHandler(deps.API, render, deps.Audit)
	avatarHandler := handlers.NewAvatarHandler(deps.Cache, deps.HTTP)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo, render)
	tecnicosHandler := handlers.NewTecnicosHandler(deps.API)

	cadastros := []*handlers.CadastroHandler{
		handlers.NewCadastroHandler(handlers.CoordenadoriasRecurso(deps.API), render, deps.Audit),
		handlers.NewCadastroHandler(handlers.MotivosRecurso(deps.API), render, deps.Audit),
		handlers.NewCadastroHandler(handlers.TiposRecurso(deps.API), render, deps.Audit),
	}

	// ======================================================
	// 🌐 ROTAS LIVRES
	// ======================================================
	base := r.Group(cfg.BasePath)
	{
		base.GET("/health", healthHandler.Health)
		base.StaticFS("/static", web.Static())

		base.GET("/login", authHandler.LoginPage)
		base.POST("/login", middleware.RateLimit(loginLimiter, authHandler.TooManyAttempts), authHandler.Login)
	}

	// ======================================================
	// 🔐 ROTAS COM SESSÃO
	// ======================================================
	app := base.Group("")
	app.Use(middleware.SessionMiddleware(cfg, cookies))
	{
		app.POST("/logout", authHandler.Logout)
		app.POST("/personificar", authHandler.Personificar)
		app.GET("/avatar", avatarHandler.Show)

		// ------------------------------
		// AGENDAMENTOS
		// ------------------------------
		app.GET("/", agendamentoHandler.Home)
		app.GET("/agendamentos/novo", agendamentoHandler.Novo)
		app.POST("/agendamentos", agendamentoHandler.Criar)
		app.GET("/agendamentos/exportar", agendamentoHandler.Exportar)
		app.GET("/agendamentos/:id", agendamentoHandler.Detalhe)
		app.POST("/agendamentos/:id/atribuir", agendamentoHandler.Atribuir)
		app.POST("/agendamentos/:id/confirmar", agendamentoHandler.Confirmar)
		app.GET("/agendamentos/:id/reuniao", agendamentoHandler.ReuniaoPage)
		app.POST("/agendamentos/:id/reuniao", agendamentoHandler.ConfirmarReuniao)
		app.POST("/agendamentos/:id/excluir", agendamentoHandler.Excluir)

		app.GET("/dashboard", dashboardHandler.Show)

		// ------------------------------
		// IMPORTAÇÃO (ADM/DEV)
		// ------------------------------
		importar := app.Group("/importar-planilha", middleware.RequirePermissao(cfg, usuario.PodeImportar))
		importar.GET("", importarHandler.Page)
		importar.POST("", importarHandler.Upload)

		// ------------------------------
		// CADASTROS (ADM/DEV)
		// ------------------------------
		for _, h := range cadastros {
			g := app.Group(h.Base(), middleware.RequirePermissao(cfg, usuario.PodeGerenciarCadastros))
			g.GET("", h.List)
			g.POST("", h.Create)
			g.POST("/:id", h.Update)
			g.POST("/:id/desativar", h.Toggle)
		}

		// ------------------------------
		// USUÁRIOS
		// ------------------------------
		usuarios := app.Group("/usuarios", middleware.RequirePermissao(cfg, usuario.PodeGerenciarUsuarios))
		usuarios.GET("", usuarioHandler.List)
		usuarios.POST("", usuarioHandler.Create)
		usuarios.GET("/novo", usuarioHandler.Novo)
		usuarios.POST("/:id", usuarioHandler.Update)
		usuarios.POST("/:id/desativar", usuarioHandler.Desativar)
		usuarios.POST("/:id/autorizar", usuarioHandler.Autorizar)

		app.GET("/registro-acoes",
			middleware.RequirePermissao(cfg, usuario.PodeVerRegistroAcoes),
			auditLogsHandler.List,
		)

		// ------------------------------
		// 🌐 API (JSON)
		// ------------------------------
		app.GET("/api/tecnicos/:coordenadoriaId",
			middleware.RequirePermissao(cfg, usuario.PodeVerTecnicos),
			tecnicosHandler.List,
		)
	}

	return nil
}
