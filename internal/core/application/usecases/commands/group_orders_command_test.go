package commands_test

import (
	"testing"
	"time"

	"amigos/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroupOrdersCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewGroupOrdersCommand(10*time.Minute, 50)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cmd.Lookback())
	assert.Equal(t, 50, cmd.Limit())
	assert.NoError(t, cmd.Validate())
}

func TestNewGroupOrdersCommand_InvalidLookback(t *testing.T) {
	_, err := commands.NewGroupOrdersCommand(0, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrLookbackIsInvalid)
}

func TestNewGroupOrdersCommand_InvalidLimit(t *testing.T) {
	_, err := commands.NewGroupOrdersCommand(10*time.Minute, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrLimitIsInvalid)
}

func TestGroupOrdersCommand_NotConstructed(t *testing.T) {
	var cmd commands.GroupOrdersCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrGroupOrdersCommandIsNotConstructed)
}
