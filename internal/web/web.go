package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/BruksfildServices01/agendamento-smul/internal/domain/agendamento"
	"github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"
	"github.com/BruksfildServices01/agendamento-smul/internal/timezone"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

//go:embed templates/*.html static/*
var files embed.FS

// Templates carrega o layout "base" e as páginas. path monta links
// sob o BASE_PATH.
func Templates(path func(string) string) (*template.Template, error) {
	return template.New("").Funcs(Funcs(path)).ParseFS(files, "templates/*.html")
}

func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func Funcs(path func(string) string) template.FuncMap {
	return template.FuncMap{
		"path":      path,
		"iniciais":  usuario.Iniciais,
		"nomeCurto": usuario.NomeCurto,
		"dataHora":  agendamento.FormatarDataHora,
		"data":      agendamento.FormatarData,
		"maskCPF":   validators.MaskCPF,
		"traco":     traco,
		"hora":      hora,
		"add":       func(a, b int) int { return a + b },
		"join":      strings.Join,
		"dict":      dict,
	}
}

// dict permite passar mais de um valor para um template aninhado.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}

func traco(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// hora formata instantes do próprio servidor (ex.: registro de ações).
func hora(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(timezone.Local()).Format("02/01/2006 15:04:05")
}
