package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/cup-roster/middleware"
	"github.com/Dosada05/cup-roster/services"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeRoster(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"APELLIDO", "NOMBRE", "DNI", "NUMERO"},
		{"Gómez", "Juan", "30.111.222", 10},
		{"Pérez", "Luis"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "lista.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestInspect_JSON(t *testing.T) {
	path := writeRoster(t)

	out, err := runCmd(t, "inspect", "--file", path, "--header-row", "1", "--start-row", "2", "--json")
	require.NoError(t, err)

	var preview services.ImportPreview
	require.NoError(t, json.Unmarshal([]byte(out), &preview))
	require.Len(t, preview.Players, 2)
	assert.Equal(t, "30111222", preview.Players[0].DNI)
	assert.Equal(t, "10", preview.Players[0].JerseyNumber)
	assert.Equal(t, "1", preview.Players[1].JerseyNumber)
	assert.Equal(t, "40000000", preview.Players[1].DNI)
	assert.Equal(t, "MID", string(preview.Players[1].Position))
}

func TestInspect_TableAndPosition(t *testing.T) {
	path := writeRoster(t)

	out, err := runCmd(t, "inspect", "--file", path, "--header-row", "1", "--start-row", "2", "--position", "def")
	require.NoError(t, err)
	assert.Contains(t, out, "players: 2")
	assert.Contains(t, out, "Gómez")
	assert.Contains(t, out, "DEF")
}

func TestInspect_RejectsBadPosition(t *testing.T) {
	path := writeRoster(t)

	_, err := runCmd(t, "inspect", "--file", path, "--position", "PORTERO")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrImportInvalidPosition)
}

func TestInspect_RequiresFile(t *testing.T) {
	_, err := runCmd(t, "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestToken_RoundTrip(t *testing.T) {
	out, err := runCmd(t, "token", "--user", "7", "--role", "admin", "--secret", "cli-secret")
	require.NoError(t, err)

	claims, err := middleware.NewAuthenticator("cli-secret").ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestToken_UnknownRole(t *testing.T) {
	_, err := runCmd(t, "token", "--user", "7", "--role", "owner", "--secret", "cli-secret")
	require.Error(t, err)
}

func TestSchema_PrintsTables(t *testing.T) {
	out, err := runCmd(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE")
	assert.Contains(t, out, "players")
}
