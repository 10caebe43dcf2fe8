package parser

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "Rekening;Boekingsdatum;Rekeninguittrekselnummer;Transactie;Naam tegenpartij bevat;Bedrag;Devies;Mededelingen"

func row(fields ...string) string {
	return strings.Join(fields, ";")
}

func TestParse_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/bank_export.csv")
	require.NoError(t, err)

	txns, err := Parse(string(data))
	require.NoError(t, err)

	// 6 data lines: one empty date, one short row => 4 parsed
	require.Len(t, txns, 4)

	// Encounter order is preserved
	assert.Equal(t, "2025-11-28", txns[0].Date)
	assert.Equal(t, "2025-11-25", txns[1].Date)
	assert.Equal(t, "2025-11-21", txns[2].Date)
	assert.Equal(t, "2025-11-15", txns[3].Date)

	assert.Equal(t, "DELHAIZE BRUSSEL", txns[0].CounterpartyName)
	assert.Equal(t, "Betaling Bancontact Delhaize", txns[0].Description)
	assert.Equal(t, "EUR", txns[0].Currency)
	assert.False(t, txns[0].IsFallbackDescription)

	// Row with an empty Mededelingen column falls back to the Transactie type
	assert.Equal(t, "Overschrijving in euro", txns[2].Description)
	assert.True(t, txns[2].IsFallbackDescription)
}

func TestParse_HeaderNotFound(t *testing.T) {
	_, err := Parse("just;some;lines\nwithout;a;header\n")
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestParse_AmountNormalization(t *testing.T) {
	content := testHeader + "\n" +
		row("ACC", "28/11/2025", "1", "Betaling", "CP", "-6,80", "EUR", "desc") + "\n" +
		row("ACC", "29/11/2025", "1", "Betaling", "CP2", "4.507,21", "EUR", "desc2") + "\n"

	txns, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "-6.80", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "4507.21", txns[1].Amount.StringFixed(2))
}

func TestParse_DateNormalization(t *testing.T) {
	content := testHeader + "\n" +
		row("ACC", "28/11/2025", "1", "Betaling", "CP", "-1,00", "EUR", "desc") + "\n" +
		row("ACC", "3/1/2025", "1", "Betaling", "CP", "-2,00", "EUR", "desc") + "\n"

	txns, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "2025-11-28", txns[0].Date)
	assert.Equal(t, "2025-01-03", txns[1].Date, "components are zero-padded")
}

func TestParse_DescriptionFallback(t *testing.T) {
	content := testHeader + "\n" +
		row("ACC", "28/11/2025", "1", "FallbackDescription", "CP", "-1,00", "EUR", "") + "\n" +
		row("ACC", "28/11/2025", "1", "Overschrijving", "CP", "-2,00", "EUR", "OriginalDescription") + "\n" +
		row("ACC", "28/11/2025", "1", "", "CP", "-3,00", "EUR", "") + "\n"

	txns, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "FallbackDescription", txns[0].Description)
	assert.True(t, txns[0].IsFallbackDescription)

	assert.Equal(t, "OriginalDescription", txns[1].Description)
	assert.False(t, txns[1].IsFallbackDescription)

	assert.Equal(t, "", txns[2].Description)
	assert.False(t, txns[2].IsFallbackDescription)
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	content := testHeader + "\n" +
		row("ACC", "28/11/2025", "1", "Betaling", "CP", "-1,00", "EUR", "ok") + "\n" +
		"ACC;28/11/2025;too;short\n" +
		row("ACC", "", "1", "Betaling", "CP", "-2,00", "EUR", "empty date") + "\n" +
		row("ACC", "notadate", "1", "Betaling", "CP", "-3,00", "EUR", "bad date") + "\n" +
		row("ACC", "28/11/2025", "1", "Betaling", "CP", "oops", "EUR", "bad amount") + "\n"

	txns, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "ok", txns[0].Description)
}

func TestParse_CurrencyDefaults(t *testing.T) {
	// Empty currency column
	content := testHeader + "\n" +
		row("ACC", "28/11/2025", "1", "Betaling", "CP", "-1,00", "", "desc") + "\n"
	txns, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "EUR", txns[0].Currency)

	// Currency column absent from the header entirely
	noDevies := "Rekening;Boekingsdatum;Rekeninguittrekselnummer;Transactie;Naam tegenpartij bevat;Bedrag;Mededelingen\n" +
		"ACC;28/11/2025;1;Betaling;CP;-1,00;desc\n"
	txns, err = Parse(noDevies)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "EUR", txns[0].Currency)
}

func TestParse_USDCurrencyKept(t *testing.T) {
	content := testHeader + "\n" +
		row("ACC", "28/11/2025", "1", "Betaling", "CP", "-1,00", "USD", "desc") + "\n"
	txns, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "USD", txns[0].Currency)
}
