package validators

import (
	"path/filepath"
	"strings"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

const MaxPlanilhaBytes = 10 * 1024 * 1024

var planilhaMimeTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel": true,
	"application/excel":        true,
}

var planilhaExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// ValidatePlanilha confere o arquivo enviado antes de qualquer
// leitura: presença, tamanho e tipo (MIME ou extensão).
func ValidatePlanilha(filename, contentType string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return httperr.ErrBusiness("arquivo_ausente")
	}
	if size <= 0 {
		return httperr.ErrBusiness("arquivo_vazio")
	}
	if size > MaxPlanilhaBytes {
		return httperr.ErrBusiness("arquivo_grande")
	}

	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	ext := strings.ToLower(filepath.Ext(filename))

	if !planilhaMimeTypes[mime] && !planilhaExtensions[ext] {
		return httperr.ErrBusiness("arquivo_tipo")
	}
	return nil
}
