// Package importer bulk-creates cards from spreadsheet and CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/flashiz/internal/progress"
	"github.com/abhisek/flashiz/internal/store"
)

// Config selects where card data lives in the file.
type Config struct {
	FilePath    string // .xlsx, .xlsm or .csv
	FrontColumn string // column letter with the prompt
	BackColumn  string // column letter with the answer
	SheetName   string // empty selects the first sheet
	StartRow    int    // 1-based; rows above are headers
}

// DefaultConfig reads fronts from A and backs from B, skipping one header row.
func DefaultConfig() Config {
	return Config{
		FrontColumn: "A",
		BackColumn:  "B",
		StartRow:    2,
	}
}

// CardService creates cards and lists the existing ones.
type CardService interface {
	CreateCard(ctx context.Context, userID, front, back string) (*progress.CardResult, error)
	ListCards(ctx context.Context, userID string) ([]store.Card, error)
}

// RowError is a problem with one input row. It does not stop the import.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Result holds the outcome of an import.
type Result struct {
	Processed int
	Created   int
	Skipped   int // blank rows and fronts the user already has
	XP        int
	Unlocked  []progress.Unlock
	Errors    []RowError
}

var (
	errMissingFront = errors.New("front is empty")
	errMissingBack  = errors.New("back is empty")
)

// Import creates a card for every data row of the file. Only a file that
// cannot be read at all is an error; bad rows are collected in the result.
func Import(ctx context.Context, svc CardService, userID string, cfg Config) (*Result, error) {
	frontIdx, err := columnIndex(cfg.FrontColumn)
	if err != nil {
		return nil, fmt.Errorf("front column: %w", err)
	}
	backIdx, err := columnIndex(cfg.BackColumn)
	if err != nil {
		return nil, fmt.Errorf("back column: %w", err)
	}
	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(cfg.FilePath)); ext {
	case ".csv":
		rows, err = readCSV(cfg.FilePath)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(cfg.FilePath, cfg.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	existing, err := svc.ListCards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[normalize(c.Front)] = true
	}

	res := &Result{}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		front, back := cell(row, frontIdx), cell(row, backIdx)
		if front == "" && back == "" {
			res.Skipped++
			continue
		}
		res.Processed++

		switch {
		case front == "":
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: errMissingFront})
			continue
		case back == "":
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: errMissingBack})
			continue
		case seen[normalize(front)]:
			res.Skipped++
			continue
		}

		created, err := svc.CreateCard(ctx, userID, front, back)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err})
			continue
		}
		seen[normalize(front)] = true
		res.Created++
		res.XP += created.XP
		for _, u := range created.Unlocked {
			res.XP += u.BonusXP
		}
		res.Unlocked = append(res.Unlocked, created.Unlocked...)
	}
	return res, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("spreadsheet has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // rows may be ragged
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(rows) == 0 && len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], "\uFEFF")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndex converts a column letter such as "B" or "AA" to a 0-based index.
func columnIndex(col string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(col))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
