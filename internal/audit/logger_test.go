package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/garage-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

func TestLoggerWritesAndFilters(t *testing.T) {
	gdb := dbtest.New(t)
	l := New(gdb)
	ctx := context.Background()

	id := uint(7)
	require.NoError(t, l.Log(ctx, Event{
		Actor:    "public",
		Action:   ActionBookingCreated,
		Entity:   "booking",
		EntityID: &id,
		Metadata: map[string]string{"date": "2025-06-01", "time": "10:00"},
	}))
	require.NoError(t, l.Log(ctx, Event{Actor: "public", Action: ActionBookingCancelled, Entity: "booking", EntityID: &id}))
	require.NoError(t, l.Log(ctx, Event{Actor: "admin", Action: ActionServiceCreated, Entity: "service"}))

	rows, total, f, err := l.List(ctx, Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, ActionServiceCreated, rows[0].Action)

	rows, total, _, err = l.List(ctx, Filter{Entity: "booking", Action: ActionBookingCreated})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(rows[0].Metadata), &meta))
	assert.Equal(t, "10:00", meta["time"])

	future := time.Now().Add(time.Hour)
	_, total, _, err = l.List(ctx, Filter{From: &future})
	require.NoError(t, err)
	assert.Zero(t, total)

	rows, total, _, err = l.List(ctx, Filter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 1)
}

func TestDispatcherWritesThroughLogger(t *testing.T) {
	gdb := dbtest.New(t)
	d := NewDispatcher(New(gdb), zap.NewNop())

	d.Dispatch(Event{Actor: "public", Action: ActionBookingConflict, Entity: "booking"})
	d.Close()

	var n int64
	require.NoError(t, gdb.Model(&models.AuditLog{}).Where("action = ?", ActionBookingConflict).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
