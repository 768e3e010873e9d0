package importexport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/ui"
)

const (
	defaultFileBaseURL = "https://api.telegram.org"
	maxUploadBytes     = 1 << 20
)

// Importer turns an uploaded CSV document into personal words.
type Importer struct {
	adder       WordAdder
	token       string
	fileBaseURL string
	httpClient  *http.Client
}

func NewImporter(adder WordAdder, token string) (*Importer, error) {
	if adder == nil {
		return nil, errors.New("importexport: word adder required")
	}
	return &Importer{
		adder:       adder,
		token:       token,
		fileBaseURL: defaultFileBaseURL,
		httpClient:  http.DefaultClient,
	}, nil
}

func (i *Importer) HandleDocumentImport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Document == nil {
		logger.Error("invalid update in HandleDocumentImport")
		return
	}
	chatID := update.Message.Chat.ID
	if chatID == 0 {
		logger.Error("chat ID is zero in HandleDocumentImport")
		return
	}

	doc := update.Message.Document
	logger.Info("importing vocabulary file", "file_name", doc.FileName, "user_id", chatID)

	reply := func(text string) {
		if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        text,
			ReplyMarkup: ui.MainMenuKeyboard(),
		}); err != nil {
			logger.Error("failed to send import reply", "user_id", chatID, "error", err)
		}
	}

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".csv") {
		reply("Файл должен быть в формате CSV: русское слово и перевод через запятую.")
		return
	}
	if doc.FileSize > maxUploadBytes {
		reply("Файл слишком большой. Максимальный размер 1 МБ.")
		return
	}

	data, err := i.download(ctx, b, doc.FileID)
	if err != nil {
		logger.Error("failed to download vocabulary file", "user_id", chatID, "error", err)
		reply("Не удалось скачать файл. Попробуйте еще раз.")
		return
	}

	rows, skipped, err := ParseVocabularyCSV(data)
	if err != nil {
		logger.Error("failed to parse CSV file", "user_id", chatID, "error", err)
		reply("Не удалось прочитать CSV. Проверьте формат файла.")
		return
	}
	if len(rows) == 0 {
		reply("В файле не найдено ни одной пары слов.")
		return
	}

	summary, err := ImportRows(ctx, i.adder, chatID, rows)
	summary.Skipped += skipped
	if err != nil {
		logger.Error("failed to import words", "user_id", chatID, "added", summary.Added, "error", err)
		reply(ui.StorageErrorText)
		return
	}

	reply(fmt.Sprintf("Добавлено слов: %d, уже были в словаре: %d, пропущено строк: %d.",
		summary.Added, summary.Duplicates, summary.Skipped))
}

func (i *Importer) download(ctx context.Context, b *bot.Bot, fileID string) ([]byte, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, err
	}
	fileURL := fmt.Sprintf("%s/file/bot%s/%s", i.fileBaseURL, i.token, file.FilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading file", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes+1))
}
