package agendamento

import "fmt"

type TipoAviso string

const (
	AvisoSucesso TipoAviso = "success"
	AvisoErro    TipoAviso = "error"
	AvisoAlerta  TipoAviso = "warning"
)

// Aviso resume o resultado da importação para o toast.
func (r ResultadoImportacao) Aviso() (TipoAviso, string, string) {
	if r.Importados > 0 {
		desc := fmt.Sprintf("%d agendamento(s) importado(s) com sucesso.", r.Importados)
		if r.Erros > 0 {
			desc += fmt.Sprintf(" %d linha(s) com erro(s) foram ignoradas.", r.Erros)
		}
		return AvisoSucesso, "Planilha importada com sucesso", desc
	}

	if r.Erros > 0 {
		return AvisoAlerta, "Nenhum agendamento importado",
			fmt.Sprintf("%d erro(s) encontrado(s). Verifique o formato da planilha.", r.Erros)
	}
	return AvisoAlerta, "Nenhum agendamento importado", "Nenhum dado válido encontrado na planilha."
}
