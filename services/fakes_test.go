package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/repositories"
	"github.com/Dosada05/cup-roster/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
	err   error
}

func newFakeTeamRepo(ids ...int) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, id := range ids {
		r.teams[id] = &models.Team{ID: id, CategoryID: 1, Name: "Equipo"}
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	for _, t := range r.teams {
		if t.CategoryID == team.CategoryID && t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = len(r.teams) + 100
	team.CreatedAt = time.Now()
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) ListByCategory(_ context.Context, categoryID int) ([]models.Team, error) {
	out := make([]models.Team, 0)
	for _, t := range r.teams {
		if t.CategoryID == categoryID {
			out = append(out, *t)
		}
	}
	return out, nil
}

// fakePlayerRepo повторяет уникальные ограничения таблицы players.
type fakePlayerRepo struct {
	mu        sync.Mutex
	players   []*models.Player
	listErr   error
	createErr map[string]error // по DNI
	creates   int
	onCreate  func() // вызывается после каждой успешной записи
}

func (r *fakePlayerRepo) seed(teamID int, jersey, dni string) {
	p := &models.Player{ID: len(r.players) + 1, TeamID: teamID, FirstName: "Ya", LastName: "Cargado", DNI: dni}
	if jersey != "" {
		p.JerseyNumber = &jersey
	}
	r.players = append(r.players, p)
}

func (r *fakePlayerRepo) Create(ctx context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if err := r.createErr[player.DNI]; err != nil {
		return err
	}
	for _, p := range r.players {
		if p.TeamID != player.TeamID {
			continue
		}
		if p.DNI == player.DNI {
			return repositories.ErrPlayerDNIConflict
		}
		if p.JerseyNumber != nil && player.JerseyNumber != nil && *p.JerseyNumber == *player.JerseyNumber {
			return repositories.ErrPlayerJerseyConflict
		}
	}
	player.ID = len(r.players) + 1
	player.CreatedAt = time.Now()
	r.players = append(r.players, player)
	if r.onCreate != nil {
		r.onCreate()
	}
	return nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Player, 0)
	for _, p := range r.players {
		if p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListJerseyNumbers(_ context.Context, teamID int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []string
	for _, p := range r.players {
		if p.TeamID == teamID && p.JerseyNumber != nil {
			out = append(out, *p.JerseyNumber)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListDNIs(_ context.Context, teamID int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []string
	for _, p := range r.players {
		if p.TeamID == teamID && p.DNI != "" {
			out = append(out, p.DNI)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ExistsByDNI(_ context.Context, teamID int, dni string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.TeamID == teamID && p.DNI == dni {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePlayerRepo) ExistsByJerseyNumber(_ context.Context, teamID int, number string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.TeamID == teamID && p.JerseyNumber != nil && *p.JerseyNumber == number {
			return true, nil
		}
	}
	return false, nil
}

type fakeTournamentRepo struct {
	tournaments map[int]models.Tournament
	categories  map[int]models.Category
}

func (r *fakeTournamentRepo) List(context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) ListCategories(_ context.Context, tournamentID int) ([]models.Category, error) {
	out := make([]models.Category, 0)
	for _, c := range r.categories {
		if c.TournamentID == tournamentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) GetCategoryByID(_ context.Context, id int) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return &c, nil
}

type fakeUploader struct {
	keys    []string
	deleted []string
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type sentMessage struct {
	room    string
	message interface{}
}

type fakeNotifier struct {
	sent []sentMessage
}

func (n *fakeNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.sent = append(n.sent, sentMessage{room: roomID, message: message})
}

var errDatabaseDown = errors.New("database down")

var rosterHeader = []interface{}{"APELLIDO", "NOMBRE", "DNI", "FECHA NAC", "NUMERO"}

// buildWorkbook кладёт заголовок в строку 24, данные с 25-й.
func buildWorkbook(t *testing.T, header []interface{}, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	require.NoError(t, f.SetCellValue(sheet, "A1", "Copa - Lista de buena fe"))
	require.NoError(t, f.SetSheetRow(sheet, "A24", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, 25+i)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}
