package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

func TestCanTransition_AllowedSet(t *testing.T) {
	allowed := [][2]entity.OrderStatus{
		{entity.StatusNew, entity.StatusWaitingForTechnician},
		{entity.StatusWaitingForTechnician, entity.StatusDiagnosing},
		{entity.StatusWaitingForTechnician, entity.StatusInProgress},
		{entity.StatusDiagnosing, entity.StatusWaitingForAcceptance},
		{entity.StatusDiagnosing, entity.StatusCancelled},
		{entity.StatusWaitingForAcceptance, entity.StatusInProgress},
		{entity.StatusWaitingForAcceptance, entity.StatusWaitingForParts},
		{entity.StatusWaitingForAcceptance, entity.StatusCancelled},
		{entity.StatusInProgress, entity.StatusWaitingForParts},
		{entity.StatusInProgress, entity.StatusReadyForPickup},
		{entity.StatusWaitingForParts, entity.StatusWaitingForTechnician},
		{entity.StatusReadyForPickup, entity.StatusCompleted},
	}
	set := map[[2]entity.OrderStatus]bool{}
	for _, p := range allowed {
		set[p] = true
	}

	for _, from := range entity.AllOrderStatuses {
		for _, to := range entity.AllOrderStatuses {
			assert.Equal(t, set[[2]entity.OrderStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestApply_TerminalStatesRejectEverything(t *testing.T) {
	for _, terminal := range []entity.OrderStatus{entity.StatusCompleted, entity.StatusCancelled} {
		for _, to := range entity.AllOrderStatuses {
			o := &entity.RepairOrder{ID: "o1", Status: terminal}
			_, err := Apply(o, to, time.Now())
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, terminal, o.Status)
		}
	}
}

func TestApply_SetsDates(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := &entity.RepairOrder{ID: "o1", Status: entity.StatusWaitingForTechnician}

	ch, err := Apply(o, entity.StatusDiagnosing, now)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWaitingForTechnician, ch.From)
	assert.Equal(t, entity.StatusDiagnosing, ch.To)
	require.NotNil(t, o.StartDate)
	assert.Equal(t, now, *o.StartDate)

	_, err = Apply(o, entity.StatusCancelled, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, o.EndDate)
	assert.True(t, IsTerminal(o.Status))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("READY_FOR_PICKUP")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReadyForPickup, st)

	_, err = ParseStatus("ready")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
