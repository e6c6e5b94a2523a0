package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/terra-clan/interview-assistant/internal/models"
)

func roster() []models.Candidate {
	return []models.Candidate{
		{ID: "a", Name: "Ann", Score: 20},
		{ID: "b", Name: "Bob"},
		{ID: "c", Name: "Cid", Score: 40},
		{ID: "d", Name: "Dee", Score: 20},
		{ID: "e", Name: "Eve"},
	}
}

func TestRank_StableByScoreDescending(t *testing.T) {
	rows := Rank(roster())

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "a", "d", "b", "e"}, ids)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 5, rows[4].Rank)
}

func TestRank_DoesNotReorderInput(t *testing.T) {
	in := roster()
	Rank(in)
	assert.Equal(t, "a", in[0].ID)
}

func TestPage(t *testing.T) {
	rows := Rank(roster())

	assert.Len(t, Page(rows, 2, 0), 2)
	assert.Equal(t, "d", Page(rows, 2, 2)[0].ID)
	assert.Len(t, Page(rows, 10, 3), 2)
	assert.Empty(t, Page(rows, 5, 5))
	assert.Len(t, Page(rows, 0, 0), 5)
}

func TestBuildDetail(t *testing.T) {
	c := models.Candidate{
		ID:   "c1",
		Name: "Ada",
		Questions: []models.Question{
			{Level: models.LevelEasy, Time: 20, Question: "What is React?"},
			{Level: models.LevelEasy, Time: 20, Question: "Explain useState hook."},
		},
		Answers: []models.Answer{
			{Question: "What is React?", Answer: "A library", Score: 10},
			{Question: "Explain useState hook.", Answer: "  ", Score: 0},
		},
		Score:   10,
		Summary: "Candidate answered all questions.",
	}

	d := BuildDetail(c)
	require.Len(t, d.Items, 2)
	assert.Equal(t, "A library", d.Items[0].Answer)
	assert.True(t, d.Items[0].Answered)
	assert.Equal(t, models.LevelEasy, d.Items[0].Level)
	assert.Equal(t, NoAnswer, d.Items[1].Answer)
	assert.False(t, d.Items[1].Answered)
	assert.Equal(t, "This candidate answered 2 questions.", d.SummaryLine)
	assert.Equal(t, c.Summary, d.Summary)
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "This candidate answered 0 question.", SummaryLine(0))
	assert.Equal(t, "This candidate answered 1 question.", SummaryLine(1))
	assert.Equal(t, "This candidate answered 6 questions.", SummaryLine(6))
}

func TestExportXLSX(t *testing.T) {
	buf, err := ExportXLSX(Rank(roster()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(rosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, rosterHeaders, rows[0])
	assert.Equal(t, "Cid", rows[1][1])
	assert.Equal(t, "40", rows[1][4])
}

func TestRenderPDF(t *testing.T) {
	d := BuildDetail(models.Candidate{
		ID:      "c1",
		Name:    "Zoë",
		Answers: []models.Answer{{Question: "q", Answer: "", Score: 0}},
	})

	data, err := RenderPDF(d)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	empty, err := RenderPDF(BuildDetail(models.Candidate{ID: "c2", Name: "Bob"}))
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
