package payment

import (
	"context"
	"fmt"
	"io"

	"rentalconnect/internal/domain"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payments"

var exportHeaders = []string{"ID", "Period", "Property", "Address", "Renter", "Renter email", "Amount", "Paid at", "Confirmed", "Confirmed at"}

// ExportLandlord writes the landlord's payments as an XLSX workbook.
func (s *Service) ExportLandlord(ctx context.Context, landlordID int64, w io.Writer) error {
	payments, err := s.payments.ListByLandlord(ctx, landlordID)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	}); err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "J1", style)
	}

	for i := range payments {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, exportRow(&payments[i])); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(payments) > 0 {
		total, _ := excelize.CoordinatesToCellName(7, len(payments)+2)
		label, _ := excelize.CoordinatesToCellName(6, len(payments)+2)
		_ = f.SetCellValue(exportSheet, label, "Total")
		_ = f.SetCellFormula(exportSheet, total, fmt.Sprintf("SUM(G2:G%d)", len(payments)+1))
	}

	_ = f.SetColWidth(exportSheet, "B", "F", 22)
	_ = f.SetColWidth(exportSheet, "H", "J", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func exportRow(p *domain.Payment) *[]interface{} {
	var title, address, renter, email, paidAt, confirmedAt string
	if p.Property != nil {
		title, address = p.Property.Title, p.Property.Address
	}
	if p.Renter != nil {
		renter, email = p.Renter.Name, p.Renter.Email
	}
	if p.PaidAt != nil {
		paidAt = p.PaidAt.Format("2006-01-02 15:04")
	}
	if p.ConfirmedAt != nil {
		confirmedAt = p.ConfirmedAt.Format("2006-01-02 15:04")
	}
	confirmed := "no"
	if p.LandlordConfirmed {
		confirmed = "yes"
	}
	return &[]interface{}{p.ID, p.Period, title, address, renter, email, p.Amount, paidAt, confirmed, confirmedAt}
}
