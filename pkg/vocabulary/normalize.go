package vocabulary

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MaxTextLength is the longest Russian or English text accepted, in characters.
const MaxTextLength = 100

const keySeparator = "\x1f"

// Normalize returns the comparison form of text: NFC, trimmed, inner
// whitespace collapsed and Unicode case folded. Every text match in this
// package goes through it, for add and delete alike.
func Normalize(text string) string {
	fields := strings.Fields(norm.NFC.String(text))
	if len(fields) == 0 {
		return ""
	}
	return cases.Fold().String(strings.Join(fields, " "))
}

// LookupKey identifies a word by its Russian and English text jointly.
func LookupKey(russian, english string) string {
	return Normalize(russian) + keySeparator + Normalize(english)
}

type wordInput struct {
	Russian string `validate:"required,max=100"`
	English string `validate:"required,max=100"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func validatePair(russian, english string) (wordInput, error) {
	input := wordInput{
		Russian: strings.TrimSpace(russian),
		English: strings.TrimSpace(english),
	}
	if err := inputValidator().Struct(input); err != nil {
		return wordInput{}, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}
	return input, nil
}

func validateRussian(russian string) (string, error) {
	text := strings.TrimSpace(russian)
	if err := inputValidator().Var(text, "required,max=100"); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidText, err)
	}
	return text, nil
}
