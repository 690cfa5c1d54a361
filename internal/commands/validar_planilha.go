package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
	"github.com/BruksfildServices01/agendamento-smul/internal/planilha"
	"github.com/BruksfildServices01/agendamento-smul/internal/validators"
)

// ValidarPlanilha confere um arquivo local com as mesmas regras do
// upload (tipo, tamanho e colunas) e devolve o código de saída.
func ValidarPlanilha(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("validar-planilha", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Uso: agendamento validar-planilha ARQUIVO...\n\n")
		fmt.Fprintf(out, "Confere se as planilhas podem ser importadas.\n")
		fmt.Fprintf(out, "Colunas obrigatórias: %v\n", planilha.ColunasObrigatorias)
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	code := 0
	for _, path := range fs.Args() {
		if err := validar(path, out); err != nil {
			fmt.Fprintf(out, "%s: %s\n", path, httperr.Message(err))
			code = 1
		}
	}
	return code
}

func validar(path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	// sem o MIME do navegador, vale a extensão
	if err := validators.ValidatePlanilha(name, "", int64(len(data))); err != nil {
		return err
	}

	resumo, err := planilha.Inspecionar(data, name, "")
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: ok, %s\n", path, resumo)
	return nil
}
