package planilha

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/BruksfildServices01/agendamento-smul/internal/httperr"
)

// Colunas que o backend espera na primeira linha da planilha.
var ColunasObrigatorias = []string{
	"RF",
	"Munícipe",
	"RG",
	"CPF",
	"Processo",
	"Data/Hora",
	"Resumo",
}

const maxRows = 100000

var errVazia = errors.New("planilha vazia")

// Resumo é o que o servidor consegue ver da planilha antes de enviá-la.
type Resumo struct {
	Colunas []string
	Linhas  int
}

// mimeXLS são os tipos que o navegador manda para o formato BIFF.
var mimeXLS = map[string]bool{
	"application/vnd.ms-excel": true,
	"application/excel":        true,
}

// formatoXLS decide o leitor: a extensão manda; sem extensão
// conhecida, vale o MIME informado no upload.
func formatoXLS(filename, contentType string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return true
	case ".xlsx":
		return false
	}
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mimeXLS[mime]
}

// ReadRows lê só a primeira aba. O formato BIFF usa o leitor xls; o
// resto vai para o excelize.
func ReadRows(data []byte, filename, contentType string) ([][]string, error) {
	if formatoXLS(filename, contentType) {
		wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		sheet := wb.GetSheet(0)
		if sheet == nil {
			return nil, errVazia
		}
		rows := linhasXLS(sheet)
		if len(rows) == 0 {
			return nil, errVazia
		}
		return rows, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errVazia
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errVazia
	}
	return rows, nil
}

func linhasXLS(sheet *xls.WorkSheet) [][]string {
	n := int(sheet.MaxRow) + 1
	if n > maxRows {
		n = maxRows
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, linhaXLS(sheet, i))
	}
	return rows
}

// linhaXLS devolve nil para linhas ausentes: o leitor xls entra em
// pânico ao acessar uma linha que não existe no arquivo.
func linhaXLS(sheet *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()

	row := sheet.Row(i)
	cells = make([]string, row.LastCol()+1)
	for j := row.FirstCol(); j <= row.LastCol(); j++ {
		cells[j] = row.Col(j)
	}
	for len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// Inspecionar confere o cabeçalho e conta as linhas com dados.
func Inspecionar(data []byte, filename, contentType string) (*Resumo, error) {
	rows, err := ReadRows(data, filename, contentType)
	if err != nil {
		log.Printf("[PLANILHA] %s ilegível: %v", filename, err)
		return nil, httperr.ErrBusiness("planilha_ilegivel")
	}

	header := rows[0]
	if faltando := ColunasAusentes(header); len(faltando) > 0 {
		return nil, httperr.ErrBusinessDetail("colunas_ausentes", strings.Join(faltando, ", "))
	}

	linhas := 0
	for _, row := range rows[1:] {
		if !rowVazia(row) {
			linhas++
		}
	}

	return &Resumo{Colunas: header, Linhas: linhas}, nil
}

// ColunasAusentes devolve, na ordem esperada, as colunas obrigatórias
// que não aparecem no cabeçalho.
func ColunasAusentes(header []string) []string {
	presentes := make(map[string]bool, len(header))
	for _, h := range header {
		presentes[NormalizarCabecalho(h)] = true
	}

	var faltando []string
	for _, col := range ColunasObrigatorias {
		if !presentes[NormalizarCabecalho(col)] {
			faltando = append(faltando, col)
		}
	}
	return faltando
}

// NormalizarCabecalho ignora acentos, caixa e espaços:
// " Munícipe " e "MUNICIPE" são a mesma coluna.
func NormalizarCabecalho(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), ""))
}

func rowVazia(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func (r *Resumo) String() string {
	return fmt.Sprintf("%d coluna(s), %d linha(s) de dados", len(r.Colunas), r.Linhas)
}
