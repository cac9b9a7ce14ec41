package stage_test

import (
	"rugcraft/domain/stage"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	for i, s := range stage.Stages[:len(stage.Stages)-1] {
		next, ok := stage.Next(s)
		assert.True(t, ok, "stage %s should have a next stage", s)
		assert.Equal(t, stage.Stages[i+1], next)
	}

	next, ok := stage.Next(stage.ReadyToShip)
	assert.False(t, ok)
	assert.Empty(t, next)

	next, ok = stage.Next(stage.Stage("carving"))
	assert.False(t, ok)
	assert.Empty(t, next)
}

func TestIsValid(t *testing.T) {
	for _, s := range stage.Stages {
		assert.True(t, stage.IsValid(s))
	}
	assert.False(t, stage.IsValid(""))
	assert.False(t, stage.IsValid("shipping"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, stage.IsTerminal(stage.ReadyToShip))
	for _, s := range stage.Stages[:len(stage.Stages)-1] {
		assert.False(t, stage.IsTerminal(s))
	}
}

func TestBoardStages(t *testing.T) {
	assert.Equal(t, []stage.Stage{
		stage.YarnPlanning, stage.Tufting, stage.Trimming, stage.Washing,
		stage.Drying, stage.Finishing, stage.QC, stage.Packing,
	}, stage.BoardStages)
}
