package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/services"
)

type fakeImportService struct {
	got    *services.ImportPlayersInput
	report *models.ImportReport
	err    error
}

func (s *fakeImportService) ImportPlayers(_ context.Context, input services.ImportPlayersInput) (*models.ImportReport, error) {
	s.got = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type fakeTeamService struct {
	teams   map[int]*models.Team
	players map[int][]models.Player
}

func (s *fakeTeamService) CreateTeam(_ context.Context, input services.CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, services.ErrTeamNameRequired
	}
	for _, t := range s.teams {
		if t.Name == input.Name {
			return nil, services.ErrTeamNameConflict
		}
	}
	team := &models.Team{ID: 100, CategoryID: input.CategoryID, Name: input.Name, Abbreviation: input.Abbreviation}
	s.teams[team.ID] = team
	return team, nil
}

func (s *fakeTeamService) GetTeamByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := s.teams[id]
	if !ok {
		return nil, services.ErrTeamNotFound
	}
	return t, nil
}

func (s *fakeTeamService) ListTeamsByCategory(_ context.Context, categoryID int) ([]models.Team, error) {
	if categoryID != 1 {
		return nil, services.ErrCategoryNotFound
	}
	out := make([]models.Team, 0)
	for _, t := range s.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (s *fakeTeamService) ListPlayers(_ context.Context, teamID int) ([]models.Player, error) {
	if _, ok := s.teams[teamID]; !ok {
		return nil, services.ErrTeamNotFound
	}
	return s.players[teamID], nil
}

func newFakeTeamService() *fakeTeamService {
	return &fakeTeamService{
		teams:   map[int]*models.Team{5: {ID: 5, CategoryID: 1, Name: "Los Pumas", Abbreviation: "PUM"}},
		players: map[int][]models.Player{},
	}
}

type formFile struct {
	name    string
	content []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, file *formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}
