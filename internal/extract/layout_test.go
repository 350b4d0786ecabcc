package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concursos/internal/domain"
)

func TestClusterRows_GroupsByYWithinTolerance(t *testing.T) {
	spans := []span{
		{x: 10, y: 700.0, text: "Cargo"},
		{x: 120, y: 699.2, text: "Vagas"}, // same baseline, slight jitter
		{x: 10, y: 680.0, text: "Motorista"},
		{x: 120, y: 680.0, text: "02"},
	}

	rows := clusterRows(spans, 2.5)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 2)
}

func TestClusterRows_TopOfPageFirst(t *testing.T) {
	spans := []span{
		{x: 10, y: 100, text: "bottom"},
		{x: 10, y: 700, text: "top"},
	}

	rows := clusterRows(spans, 2.5)
	require.Len(t, rows, 2)
	assert.Equal(t, "top", rows[0][0].text)
	assert.Equal(t, "bottom", rows[1][0].text)
}

func TestClusterCells_MergesWordsSplitsColumns(t *testing.T) {
	row := []span{
		{x: 10, y: 700, w: 30, text: "Agente"},
		{x: 43, y: 700, w: 12, text: "de"}, // 3pt gap, same cell
		{x: 58, y: 700, w: 30, text: "Saúde"},
		{x: 150, y: 700, w: 20, text: "40h"}, // wide gap, new cell
	}

	cells := clusterCells(row, 9.0)
	assert.Equal(t, []string{"Agente de Saúde", "40h"}, cells)
}

func TestClusterCells_SortsByX(t *testing.T) {
	row := []span{
		{x: 200, y: 700, w: 20, text: "Vagas"},
		{x: 10, y: 700, w: 30, text: "Cargo"},
	}

	cells := clusterCells(row, 9.0)
	assert.Equal(t, []string{"Cargo", "Vagas"}, cells)
}

func TestGridRows_DropsEmptyRows(t *testing.T) {
	spans := []span{
		{x: 10, y: 700, w: 30, text: "Cargo"},
		{x: 10, y: 680, w: 30, text: "Motorista"},
	}

	rows := gridRows(spans, 2.5, 9.0)
	assert.Equal(t, [][]string{{"Cargo"}, {"Motorista"}}, rows)
}

func TestLayoutExtract_GarbageBytes(t *testing.T) {
	_, err := NewLayout().Extract([]byte("this is not a pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentUnreadable)
}

func TestLayoutExtract_TruncatedHeader(t *testing.T) {
	_, err := NewLayout().Extract([]byte("%PDF-1.7\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentUnreadable)
}
