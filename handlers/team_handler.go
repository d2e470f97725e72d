package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/services"
)

type TeamHandler struct {
	teamService services.TeamService
	now         func() time.Time
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: ts,
		now:         time.Now,
	}
}

type createTeamRequest struct {
	CategoryID   int     `json:"category_id"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	LogoURL      *string `json:"logo_url"`
}

// playerView — игрок с возрастом на момент запроса.
type playerView struct {
	models.Player
	Age int `json:"age"`
}

// CreateTeam godoc
// @Summary Создать команду в категории
// @Tags teams
// @Accept json
// @Produce json
// @Param body body createTeamRequest true "category_id, name, abbreviation, logo_url"
// @Success 201 {object} map[string]interface{} "Команда создана"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 403 {object} map[string]string "Роль только для чтения"
// @Failure 404 {object} map[string]string "Категория не найдена"
// @Failure 409 {object} map[string]string "Имя уже занято в категории"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.CategoryID <= 0 {
		failedValidationResponse(w, r, map[string]string{"category_id": "must be a positive integer"})
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), services.CreateTeamInput{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTeamByID godoc
// @Summary Получить команду по ID
// @Tags teams
// @Produce json
// @Param teamID path int true "ID команды"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Команда не найдена"
// @Security BearerAuth
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPlayers godoc
// @Summary Состав команды, по номерам
// @Tags teams
// @Produce json
// @Param teamID path int true "ID команды"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Команда не найдена"
// @Security BearerAuth
// @Router /teams/{teamID}/players [get]
func (h *TeamHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.teamService.ListPlayers(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	now := h.now()
	views := make([]playerView, len(players))
	for i, p := range players {
		views[i] = playerView{Player: p, Age: p.Age(now)}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": views}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTeamsByCategory godoc
// @Summary Команды категории
// @Tags teams
// @Produce json
// @Param categoryID path int true "ID категории"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Категория не найдена"
// @Security BearerAuth
// @Router /categories/{categoryID}/teams [get]
func (h *TeamHandler) ListTeamsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.teamService.ListTeamsByCategory(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
