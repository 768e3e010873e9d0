package importexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

// Row is one (Russian, English) line of an uploaded vocabulary file.
type Row struct {
	Russian string
	English string
}

// Summary counts the outcome of an import.
type Summary struct {
	Added      int
	Duplicates int
	Skipped    int
}

// WordAdder is the part of vocabulary.Service an import needs.
type WordAdder interface {
	AddPersonalWord(ctx context.Context, userID int64, russian, english string) (vocabulary.AddResult, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const maxDelimiterSampleRecords = 20

// ParseVocabularyCSV reads Russian/English rows. Extra columns are ignored;
// blank or one-sided rows are counted as skipped. A leading header row is
// dropped.
func ParseVocabularyCSV(data []byte) ([]Row, int, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	delimiter := detectCSVDelimiter(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var rows []Row
	skipped := 0
	checkedHeader := false

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, err
		}
		if isEmptyCSVRecord(record) {
			continue
		}
		if !checkedHeader {
			checkedHeader = true
			if isHeaderRecord(record) {
				continue
			}
		}
		if len(record) < 2 {
			skipped++
			continue
		}
		russian := strings.TrimSpace(record[0])
		english := strings.TrimSpace(record[1])
		if russian == "" || english == "" {
			skipped++
			continue
		}
		rows = append(rows, Row{Russian: russian, English: english})
	}

	return rows, skipped, nil
}

func detectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', '\t', ';'}
	bestDelimiter := candidates[0]
	bestScore := -1

	for _, delimiter := range candidates {
		score, err := scoreDelimiter(data, delimiter, maxDelimiterSampleRecords)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			bestDelimiter = delimiter
		}
	}

	if bestScore <= 0 {
		return ','
	}
	return bestDelimiter
}

// scoreDelimiter returns how many sampled records share the most common
// multi-field width when split on delimiter.
func scoreDelimiter(data []byte, delimiter rune, maxRecords int) (int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	widths := make(map[int]int)
	for seen := 0; seen < maxRecords; {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		if isEmptyCSVRecord(record) {
			continue
		}
		seen++
		if len(record) >= 2 {
			widths[len(record)]++
		}
	}

	best := 0
	for _, n := range widths {
		best = max(best, n)
	}
	return best, nil
}

func isEmptyCSVRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

var headerNames = map[string]struct{}{
	"russian":     {},
	"english":     {},
	"русский":     {},
	"английский":  {},
	"word":        {},
	"translation": {},
}

func isHeaderRecord(record []string) bool {
	if len(record) < 2 {
		return false
	}
	_, leftOK := headerNames[vocabulary.Normalize(record[0])]
	_, rightOK := headerNames[vocabulary.Normalize(record[1])]
	return leftOK && rightOK
}

// ImportRows adds every row to the user's personal words. Rows failing
// validation are skipped; a storage fault aborts the import and is returned
// along with the counts so far.
func ImportRows(ctx context.Context, adder WordAdder, userID int64, rows []Row) (Summary, error) {
	var summary Summary
	for _, row := range rows {
		res, err := adder.AddPersonalWord(ctx, userID, row.Russian, row.English)
		switch {
		case errors.Is(err, vocabulary.ErrInvalidText):
			summary.Skipped++
		case err != nil:
			return summary, err
		case res.Added:
			summary.Added++
		default:
			summary.Duplicates++
		}
	}
	return summary, nil
}

// BuildExportCSV writes cards as Russian,English rows with a BOM and CRLF
// line endings so spreadsheet apps open the Cyrillic text correctly.
func BuildExportCSV(cards []vocabulary.WordCard) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.Write(utf8BOM); err != nil {
		return nil, err
	}

	writer := csv.NewWriter(&buf)
	writer.UseCRLF = true

	for _, card := range cards {
		if err := writer.Write([]string{card.Russian, card.English}); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("vocabulary-%s.csv", now.Format("20060102"))
}

// SortCardsForExport orders cards alphabetically by Russian text, then id.
func SortCardsForExport(cards []vocabulary.WordCard) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Russian == cards[j].Russian {
			return cards[i].ID < cards[j].ID
		}
		return cards[i].Russian < cards[j].Russian
	})
}
