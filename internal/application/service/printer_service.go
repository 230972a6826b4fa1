package service

import (
	"context"
	"fmt"

	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/internal/domain/repository"
	"github.com/omkarj/kirana-billing-api/pkg/money"
	"github.com/omkarj/kirana-billing-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	settingsRepo repository.SettingsRepository
	printerType  string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, settingsRepo repository.SettingsRepository, printerType string) *PrinterService {
	return &PrinterService{
		printer:      p,
		settingsRepo: settingsRepo,
		printerType:  printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
		},
		BillNo:  "TEST-0001",
		Date:    "Test Date",
		Cashier: "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, Rate: 10.00, Amount: 10.00},
			{Name: "Test Item 2", Quantity: 2.5, Rate: 4.00, Amount: 10.00},
		},
		SubTotal:   20.00,
		RoundOff:   0.00,
		GrandTotal: 20.00,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// BuildReceipt composes a printable receipt from a saved bill and the
// store settings.
func BuildReceipt(bill *entity.Bill, settings *entity.StoreSettings) *entity.Receipt {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.StoreName,
			Address:   settings.StoreAddress,
			City:      settings.City,
		},
		BillNo:     bill.BillNo,
		Date:       bill.CreatedAt.Format("02/01/2006 15:04"),
		Cashier:    bill.CashierName,
		Customer:   bill.CustomerName,
		City:       bill.City,
		SubTotal:   money.ToDecimal(bill.SubTotalCents),
		RoundOff:   money.ToDecimal(bill.RoundOffCents),
		GrandTotal: money.ToDecimal(bill.GrandTotalCents),
	}

	for _, l := range bill.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:           l.DisplayName(),
			Quantity:       l.Quantity,
			Rate:           money.ToDecimal(l.RateCents),
			RateOverridden: l.RateOverridden,
			Amount:         money.ToDecimal(l.AmountCents),
		})
	}

	return receipt
}

// PrintBill formats a saved bill as a receipt and sends it to the
// printer.
func (s *PrinterService) PrintBill(ctx context.Context, bill *entity.Bill) (*entity.Receipt, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(bill, settings)
	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.City != "" {
		doc.Text(r.Header.City)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Bill info
	doc.KeyValue("Bill No:", r.BillNo).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.City != "" {
		doc.KeyValue("City:", r.City)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(money.FormatQty(item.Quantity), item.Name, fmt.Sprintf("%.2f", item.Amount))
		if item.Quantity != 1 {
			doc.TextF("  @ %.2f each", item.Rate)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.RoundOff != 0 {
		doc.KeyValue("Round Off:", fmt.Sprintf("%+.2f", r.RoundOff))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.GrandTotal)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you! Visit again!").
		FeedLines(1).
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
