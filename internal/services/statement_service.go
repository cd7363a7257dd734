package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ruralpay/ledger/internal/models"
)

const statementSheet = "Transactions"

var statementHeaders = []string{"ID", "Date", "Type", "Reference", "Origin", "Destination",
	"Balance Before", "Amount", "Balance After", "Notes"}

// StatementService renders ledger transactions as an xlsx workbook
type StatementService struct{}

func NewStatementService() *StatementService {
	return &StatementService{}
}

// Filename is the attachment name of the ledger's statement
func (s *StatementService) Filename(ledger *models.Ledger) string {
	return fmt.Sprintf("ledger_%d_statement.xlsx", ledger.ID)
}

func (s *StatementService) Write(w io.Writer, ledger *models.Ledger, transactions []models.Transaction) error {
	f, err := s.build(ledger, transactions)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func (s *StatementService) build(ledger *models.Ledger, transactions []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), statementSheet); err != nil {
		return nil, err
	}

	f.SetCellValue(statementSheet, "A1", "Ledger")
	f.SetCellValue(statementSheet, "B1", ledger.Name)
	f.SetCellValue(statementSheet, "A2", "Virtual Account")
	f.SetCellValue(statementSheet, "B2", fmt.Sprintf("%s %s", ledger.BankCode, ledger.VirtualAccount))
	f.SetCellValue(statementSheet, "A3", "Balance")
	f.SetCellValue(statementSheet, "B3", ledger.Balance)

	const headerRow = 5
	for i, h := range statementHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(statementSheet, cell, h)
	}

	for idx, t := range transactions {
		row := headerRow + 1 + idx
		values := []any{
			t.ID,
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			t.Type.DisplayName(),
			t.Reference,
			t.Origin(),
			t.Destination(),
			t.BalanceBefore,
			t.Amount,
			t.BalanceAfter,
			t.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(statementSheet, cell, v)
		}
	}

	f.SetColWidth(statementSheet, "A", "A", 18)
	f.SetColWidth(statementSheet, "B", "B", 20)
	f.SetColWidth(statementSheet, "C", "C", 10)
	f.SetColWidth(statementSheet, "D", "D", 34)
	f.SetColWidth(statementSheet, "E", "F", 30)
	f.SetColWidth(statementSheet, "G", "I", 15)
	f.SetColWidth(statementSheet, "J", "J", 30)

	return f, nil
}
