package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"transportes/internal/domain/models"
	"transportes/internal/logger"
	"transportes/internal/repositories"
	"transportes/internal/utils"
)

// ReportsService renders the printed documents consumed downstream:
// the caixa closure statement and the per-trip sales manifest. It only
// reads ledger snapshots; nothing here mutates state.
type ReportsService struct {
	CaixaRepo  repositories.CaixaRepository
	VendaRepo  repositories.VendaRepository
	ViagemRepo repositories.ViagemRepository
	RequestID  string
}

// FechoCaixaPDF builds the closure statement of one caixa.
func (s ReportsService) FechoCaixaPDF(caixaID int64) ([]byte, string, error) {
	caixa, err := s.CaixaRepo.GetByID(caixaID)
	if err != nil {
		return nil, "", err
	}
	logger.Event(s.RequestID, "relatorios", "fecho_caixa_pdf", fmt.Sprintf("caixa_id=%d", caixaID))
	return buildFechoCaixaPDF(caixa)
}

// ManifestoViagemPDF builds the sales manifest of one trip: header with
// route/bus/driver plus one line per sold seat.
func (s ReportsService) ManifestoViagemPDF(viagemID int64) ([]byte, string, error) {
	viagem, err := s.ViagemRepo.GetDetalheByID(viagemID)
	if err != nil {
		return nil, "", err
	}
	vendas, err := s.VendaRepo.List(repositories.VendaFilter{ViagemID: viagemID})
	if err != nil {
		return nil, "", err
	}
	logger.Event(s.RequestID, "relatorios", "manifesto_pdf", fmt.Sprintf("viagem_id=%d vendas=%d", viagemID, len(vendas)))
	return buildManifestoPDF(viagem, vendas)
}

func buildFechoCaixaPDF(c models.Caixa) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fecho de Caixa", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, pdfText(fmt.Sprintf("Relatório de Fecho de Caixa - ID: %d", c.ID)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	linha := func(rotulo, valor string) {
		pdf.CellFormat(50, 7, pdfText(rotulo+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, pdfText(valor), "", 1, "L", false, 0, "")
	}

	linha("Bilheteiro", safe(c.UsuarioNome, "N/A"))
	linha("Status", string(c.Status))
	linha("Abertura", utils.FormatBR(c.DataAbertura))
	if c.DataFechamento != nil {
		linha("Fechamento", utils.FormatBR(*c.DataFechamento))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Valores", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)

	linha("Saldo Inicial", utils.FormatBRL(c.SaldoInicial))
	linha("Vendas (Dinheiro)", utils.FormatBRL(c.TotalDinheiro))
	linha("Vendas (Pix)", utils.FormatBRL(c.TotalPix))
	linha("Vendas (Cartão)", utils.FormatBRL(c.TotalCartao))
	pdf.Ln(2)

	x, y := pdf.GetXY()
	pdf.Line(x, y, 190, y)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	linha("Total Geral em Vendas", utils.FormatBRL(c.TotalGeral))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("FECHO_CAIXA_%d.pdf", c.ID), nil
}

func buildManifestoPDF(v models.ViagemDetalhe, vendas []models.Venda) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Manifesto de Viagem", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, pdfText(fmt.Sprintf("Manifesto de Passageiros - Viagem %d", v.ID)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	cab := []string{
		fmt.Sprintf("Rota: %s -> %s (%s)", v.Rota.Origem, v.Rota.Destino, v.Rota.TipoRota),
		fmt.Sprintf("Ônibus: %s  Placa: %s  (%s)", v.Onibus.NumeroOnibus, safe(v.Onibus.Placa, "-"), v.Onibus.EmpresaParceira),
		fmt.Sprintf("Motorista: %s", v.Motorista.NomeCompleto),
		fmt.Sprintf("Partida prevista: %s", utils.FormatBR(v.PartidaPrevista)),
		fmt.Sprintf("Status: %s", v.Status),
	}
	for _, linha := range cab {
		pdf.CellFormat(0, 6, pdfText(linha), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(15, 7, "Polt.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 7, "Passageiro", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Documento", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Valor", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, pdfText("Método"), "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	var total int64
	for _, venda := range vendas {
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", venda.NumeroPoltrona), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, pdfText(venda.NomePassageiro), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, pdfText(venda.DocumentoPassageiro), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, pdfText(utils.FormatBRL(venda.ValorCentavos)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, pdfText(string(venda.MetodoPagamento)), "1", 1, "L", false, 0, "")
		total += venda.ValorCentavos
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, pdfText(fmt.Sprintf("Passageiros: %d    Total vendido: %s", len(vendas), utils.FormatBRL(total))), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("MANIFESTO_VIAGEM_%d.pdf", v.ID), nil
}

// pdfText converts UTF-8 strings to the cp1252 set used by the core
// Helvetica font, so accented Portuguese text renders correctly.
var pdfText = func() func(string) string {
	tr := gofpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")
	return func(s string) string { return tr(s) }
}()

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
