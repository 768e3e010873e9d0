package importexport

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smith3v/tg-vocab-trainer/pkg/internal/testutil"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

func newTestService(t *testing.T) *vocabulary.Service {
	t.Helper()
	store, _ := testutil.SetupStore(t)
	service, err := vocabulary.NewService(store)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected rune
	}{
		{"comma", "russian,english\nкот,cat\n", ','},
		{"tab", "russian\tenglish\nкот\tcat\n", '\t'},
		{"semicolon", "russian;english\nкот;cat\n", ';'},
		{"single column", "кот\nдом\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectCSVDelimiter([]byte(tt.input))
			if got != tt.expected {
				t.Fatalf("expected %q delimiter, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseVocabularyCSV(t *testing.T) {
	data := strings.Join([]string{
		"Русский;Английский;note",
		"Кот;Cat;pet",
		"Дом;;missing-english",
		";missing-russian",
		"",
		" Окно ; Window ",
	}, "\n")

	rows, skipped, err := ParseVocabularyCSV(append(append([]byte(nil), utf8BOM...), data...))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0] != (Row{Russian: "Кот", English: "Cat"}) {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1] != (Row{Russian: "Окно", English: "Window"}) {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", skipped)
	}
}

func TestParseVocabularyCSVKeepsFirstRowWithoutHeader(t *testing.T) {
	rows, _, err := ParseVocabularyCSV([]byte("Кот,Cat\nДом,House\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(rows) != 2 || rows[0].Russian != "Кот" {
		t.Fatalf("expected first data row to be kept, got %+v", rows)
	}
}

func TestImportRows(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if _, err := service.AddPersonalWord(ctx, 111, "Кот", "Cat"); err != nil {
		t.Fatalf("failed to seed personal word: %v", err)
	}

	summary, err := ImportRows(ctx, service, 111, []Row{
		{Russian: "кот", English: "cat"},
		{Russian: "Дом", English: "House"},
		{Russian: strings.Repeat("ы", vocabulary.MaxTextLength+1), English: "Long"},
	})
	if err != nil {
		t.Fatalf("unexpected import error: %v", err)
	}
	if summary != (Summary{Added: 1, Duplicates: 1, Skipped: 1}) {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	words, err := service.PersonalWords(ctx, 111)
	if err != nil {
		t.Fatalf("failed to list words: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 personal words, got %+v", words)
	}
}

type brokenAdder struct{}

func (brokenAdder) AddPersonalWord(context.Context, int64, string, string) (vocabulary.AddResult, error) {
	return vocabulary.AddResult{}, vocabulary.ErrStorage
}

func TestImportRowsStopsOnStorageFault(t *testing.T) {
	_, err := ImportRows(context.Background(), brokenAdder{}, 1, []Row{{"Кот", "Cat"}, {"Дом", "House"}})
	if !errors.Is(err, vocabulary.ErrStorage) {
		t.Fatalf("expected storage fault, got %v", err)
	}
}

func TestBuildExportCSV(t *testing.T) {
	cards := []vocabulary.WordCard{
		{Russian: "Кот", English: "Cat"},
		{Russian: "запятая,слово", English: `quote"word`},
	}

	data, err := BuildExportCSV(cards)
	if err != nil {
		t.Fatalf("unexpected export error: %v", err)
	}
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatalf("expected UTF-8 BOM prefix")
	}

	output := string(data[len(utf8BOM):])
	if !strings.HasPrefix(output, "Кот,Cat\r\n") {
		t.Fatalf("expected first row with CRLF, got %q", output)
	}
	if !strings.Contains(output, "\"запятая,слово\",\"quote\"\"word\"") {
		t.Fatalf("expected quoted fields, got %q", output)
	}

	rows, _, err := ParseVocabularyCSV(data)
	if err != nil {
		t.Fatalf("failed to parse exported CSV: %v", err)
	}
	if len(rows) != 2 || rows[1].Russian != "запятая,слово" {
		t.Fatalf("expected export to be importable, got %+v", rows)
	}
}

func TestSortCardsForExport(t *testing.T) {
	cards := []vocabulary.WordCard{
		{ID: 3, Russian: "Кот"},
		{ID: 2, Russian: "Дом"},
		{ID: 1, Russian: "Кот"},
	}
	SortCardsForExport(cards)
	if cards[0].ID != 2 || cards[1].ID != 1 || cards[2].ID != 3 {
		t.Fatalf("unexpected order: %+v", cards)
	}
}
