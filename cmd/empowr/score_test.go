package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteScore_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeScore(&buf, 75000, 500, 7, true))

	var score types.CreditScore
	require.NoError(t, json.Unmarshal(buf.Bytes(), &score))
	assert.Equal(t, 625, score.FicoScore)
	assert.InDelta(t, 625, score.EmpowrScore, 25)
	assert.Equal(t, scoring.Blend(score.FicoScore, score.EmpowrScore), score.BlendedScore)
	assert.Equal(t, scoring.RiskLevelFor(score.BlendedScore), score.RiskLevel)
}

func TestWriteScore_SeedIsRepeatable(t *testing.T) {
	var a, b bytes.Buffer

	require.NoError(t, writeScore(&a, 90000, 250, 42, true))
	require.NoError(t, writeScore(&b, 90000, 250, 42, true))

	var sa, sb types.CreditScore
	require.NoError(t, json.Unmarshal(a.Bytes(), &sa))
	require.NoError(t, json.Unmarshal(b.Bytes(), &sb))
	assert.Equal(t, sa.EmpowrScore, sb.EmpowrScore)
	assert.Equal(t, sa.BlendedScore, sb.BlendedScore)
}

func TestWriteScore_Boxes(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeScore(&buf, 75000, 500, 7, false))

	out := buf.String()
	assert.Contains(t, out, "INPUTS")
	assert.Contains(t, out, "$75,000.00")
	assert.Contains(t, out, "CREDIT SCORE")
	assert.Contains(t, out, "FICO:     625")
}

func TestWriteScore_Negative(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorContains(t, writeScore(&buf, -1, 0, 0, true), "--income")
	assert.ErrorContains(t, writeScore(&buf, 1000, -1, 0, true), "--debt")
	assert.Empty(t, buf.String())
}

func TestScoreCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })
	rootCmd.SetArgs([]string{"score", "--income", "75000", "--debt", "500", "--seed", "7", "--json"})

	require.NoError(t, rootCmd.Execute())

	var score types.CreditScore
	require.NoError(t, json.Unmarshal(buf.Bytes(), &score))
	assert.Equal(t, 625, score.FicoScore)
}
