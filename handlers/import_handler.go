package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/cup-roster/importer"
	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/services"
)

const noPlayersWarning = "No se encontraron jugadores en el archivo Excel."

type PlayerImportHandler struct {
	importService  services.PlayerImportService
	defaults       importer.Options
	maxUploadBytes int64
}

// NewPlayerImportHandler: defaults подставляются для полей формы, которых нет в запросе.
func NewPlayerImportHandler(svc services.PlayerImportService, defaults importer.Options, maxUploadBytes int64) *PlayerImportHandler {
	return &PlayerImportHandler{
		importService:  svc,
		defaults:       defaults,
		maxUploadBytes: maxUploadBytes,
	}
}

// ImportPlayers godoc
// @Summary Загрузить состав команды из Excel
// @Tags players
// @Description Разбирает таблицу, создаёт игроков, недостающие номера и DNI выдаются автоматически.
// @Description Игроки с уже зарегистрированным DNI пропускаются, занятый номер попадает в ошибки.
// @Accept multipart/form-data
// @Produce json
// @Param teamID path int true "ID команды"
// @Param file formData file true "Файл .xlsx или .xls"
// @Param header_row formData int false "Строка заголовков (по умолчанию 24)"
// @Param start_data_row formData int false "Первая строка данных (по умолчанию 25)"
// @Param default_position formData string false "GK, DEF, MID или FWD (по умолчанию MID)"
// @Success 200 {object} map[string]interface{} "Отчёт о загрузке"
// @Failure 400 {object} map[string]string "Нет файла или неверные параметры"
// @Failure 403 {object} map[string]string "Роль только для чтения"
// @Failure 404 {object} map[string]string "Команда не найдена"
// @Failure 413 {object} map[string]string "Файл слишком большой"
// @Failure 422 {object} map[string]string "Файл не читается как таблица"
// @Security BearerAuth
// @Router /teams/{teamID}/players/import [post]
func (h *PlayerImportHandler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			payloadTooLargeResponse(w, r, h.maxUploadBytes)
			return
		}
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	opts, problems := h.parseOptions(r)
	if len(problems) > 0 {
		failedValidationResponse(w, r, problems)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			mapServiceErrorToHTTP(w, r, services.ErrImportFileRequired)
			return
		}
		badRequestResponse(w, r, fmt.Errorf("failed to get file from form: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to read uploaded file: %w", err))
		return
	}

	report, err := h.importService.ImportPlayers(r.Context(), services.ImportPlayersInput{
		TeamID:   teamID,
		FileName: header.Filename,
		Data:     data,
		Options:  opts,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"report":  report,
		"summary": report.Summary(),
	}
	if report.Empty() {
		response["warning"] = noPlayersWarning
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// parseOptions читает необязательные поля формы поверх значений по умолчанию.
func (h *PlayerImportHandler) parseOptions(r *http.Request) (importer.Options, map[string]string) {
	opts := h.defaults
	problems := make(map[string]string)

	readRow := func(field string, dst *int) {
		raw := strings.TrimSpace(r.FormValue(field))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			problems[field] = "must be a positive integer"
			return
		}
		*dst = n
	}
	readRow("header_row", &opts.HeaderRow)
	readRow("start_data_row", &opts.StartRow)

	if raw := strings.TrimSpace(r.FormValue("default_position")); raw != "" {
		pos := models.Position(strings.ToUpper(raw))
		if !pos.Valid() {
			problems["default_position"] = "must be one of GK, DEF, MID, FWD"
		} else {
			opts.DefaultPosition = pos
		}
	}
	return opts, problems
}
