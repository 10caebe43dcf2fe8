package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrHeaderNotFound means the export has no recognizable header line. The
// whole import is rejected; nothing is ingested.
var ErrHeaderNotFound = errors.New("could not find export header row")

// headerMarker identifies the header line inside the export preamble. The
// bank puts a dozen metadata lines before it, so the header is found by
// substring, not by position.
const headerMarker = "Rekening;Boekingsdatum;Rekeninguittrekselnummer"

// Column labels as they appear in the export header.
const (
	colDate         = "Boekingsdatum"
	colAmount       = "Bedrag"
	colCurrency     = "Devies"
	colCounterparty = "Naam tegenpartij bevat"
	colDescription  = "Mededelingen"
	colTransaction  = "Transactie"
)

// ParsedTransaction is one normalized row of a bank export.
type ParsedTransaction struct {
	Date                  string // ISO YYYY-MM-DD
	Amount                decimal.Decimal
	Currency              string
	CounterpartyName      string
	Description           string
	IsFallbackDescription bool
	RawColumns            []string
}

// Parse reads a semicolon-delimited bank export and returns its rows in
// encounter order. Rows with fewer fields than the header, an empty date, or
// an unparseable date/amount are dropped silently.
func Parse(content string) ([]ParsedTransaction, error) {
	lines := strings.Split(content, "\n")

	headerIndex := -1
	for i, line := range lines {
		if strings.Contains(line, headerMarker) {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return nil, ErrHeaderNotFound
	}

	header := strings.Split(lines[headerIndex], ";")
	idxDate := indexOf(header, colDate)
	idxAmount := indexOf(header, colAmount)
	idxCurrency := indexOf(header, colCurrency)
	idxName := indexOf(header, colCounterparty)
	idxDesc := indexOf(header, colDescription)
	idxTransaction := indexOf(header, colTransaction)

	var transactions []ParsedTransaction
	for _, line := range lines[headerIndex+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cols := strings.Split(line, ";")
		if len(cols) < len(header) {
			continue // malformed row
		}

		dateStr := field(cols, idxDate)
		if dateStr == "" {
			continue
		}
		date, err := normalizeDate(dateStr)
		if err != nil {
			continue
		}

		amount, err := normalizeAmount(field(cols, idxAmount))
		if err != nil {
			continue
		}

		currency := field(cols, idxCurrency)
		if currency == "" {
			currency = "EUR"
		}

		description := field(cols, idxDesc)
		isFallback := false
		if description == "" && idxTransaction != -1 {
			description = field(cols, idxTransaction)
			if description != "" {
				isFallback = true
			}
		}

		transactions = append(transactions, ParsedTransaction{
			Date:                  date,
			Amount:                amount,
			Currency:              currency,
			CounterpartyName:      field(cols, idxName),
			Description:           description,
			IsFallbackDescription: isFallback,
			RawColumns:            cols,
		})
	}

	return transactions, nil
}

func indexOf(header []string, label string) int {
	for i, h := range header {
		if h == label {
			return i
		}
	}
	return -1
}

// field returns the column value for a resolved index, or "" when the label
// was absent from the header.
func field(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return cols[idx]
}

// normalizeDate turns DD/MM/YYYY into zero-padded YYYY-MM-DD.
func normalizeDate(s string) (string, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("expected DD/MM/YYYY, got %q", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("parsing day %q: %w", parts[0], err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("parsing month %q: %w", parts[1], err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("parsing year %q: %w", parts[2], err)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// normalizeAmount converts the European notation to a decimal:
// "." is a thousands separator, "," the decimal mark.
// "4.507,21" -> 4507.21, "-6,80" -> -6.80.
func normalizeAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
