package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/brand"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/financial"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/progress"
	"github.com/Speakceo/speakceo-education-platform-sub002/tests"
)

func newManager(t *testing.T) *Manager {
	return NewManager(Options{Docs: testutil.OpenDocs(t), Logger: testutil.NewLogger(t)})
}

func TestManager_OpenClose(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	_, err := m.Open(ctx, "  ")
	assert.Equal(t, ErrNoLearner, err)

	ws, err := m.Open(ctx, "learner-1")
	require.NoError(t, err)
	again, err := m.Open(ctx, " learner-1 ")
	require.NoError(t, err)
	assert.Same(t, ws, again)
	assert.Equal(t, 1, m.Len())

	_, err = ws.Canvas.AddComponent(ctx, canvas.Channels)
	require.NoError(t, err)

	m.Close("learner-1")
	assert.Equal(t, 0, m.Len())

	reopened, err := m.Open(ctx, "learner-1")
	require.NoError(t, err)
	assert.NotSame(t, ws, reopened)
	assert.Len(t, reopened.Canvas.State().Components, 1, "state survives a close")
}

func TestManager_idleEviction(t *testing.T) {
	ctx := context.Background()
	docs := testutil.OpenDocs(t)
	m := NewManager(Options{Docs: docs, Logger: testutil.NewLogger(t), IdleTimeout: time.Minute})
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	stale, err := m.Open(ctx, "learner-1")
	require.NoError(t, err)
	_, err = m.Open(ctx, "learner-2")
	require.NoError(t, err)

	clock = clock.Add(45 * time.Second)
	_, err = m.Open(ctx, "learner-2") // refreshes learner-2 only
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	// another writer replaces learner-1's canvas while it sits idle
	require.NoError(t, core.SaveJSON(ctx, docs, core.DocumentKey(core.DocCanvas, "learner-1"), canvas.BusinessModel{
		Version:    7,
		Components: []canvas.Component{{ID: "ext", Type: canvas.Channels}},
	}))

	clock = clock.Add(30 * time.Second)
	fresh, err := m.Open(ctx, "learner-1")
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, 2, m.Len())
	require.Len(t, fresh.Canvas.State().Components, 1, "reloaded from storage")
	assert.Equal(t, "ext", fresh.Canvas.State().Components[0].ID)

	clock = clock.Add(2 * time.Minute)
	_, err = m.Open(ctx, "learner-3")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len(), "idle workspaces are dropped")
}

func TestManager_noIdleTimeout(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	ws, err := m.Open(ctx, "learner-1")
	require.NoError(t, err)
	clock = clock.Add(24 * time.Hour)
	again, err := m.Open(ctx, "learner-1")
	require.NoError(t, err)
	assert.Same(t, ws, again)
}

func TestManager_isolation(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	ws1, _ := m.Open(ctx, "learner-1")
	ws2, _ := m.Open(ctx, "learner-2")
	_, _ = ws1.Canvas.AddComponent(ctx, canvas.Channels)

	assert.Len(t, ws1.Canvas.State().Components, 1)
	assert.Empty(t, ws2.Canvas.State().Components)
}

func TestWorkspace_Progress(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	ws, err := m.Open(ctx, "learner-1")
	require.NoError(t, err)

	report, err := ws.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Overall)
	assert.Equal(t, progress.StatusLocked, report.Tools[progress.ToolBranding].Status)

	for i := 0; i < 12; i++ {
		_, err = ws.Canvas.AddComponent(ctx, canvas.KeyPartners)
		require.NoError(t, err)
	}
	require.NoError(t, ws.SetBrand(ctx, brand.Identity{Name: "Lemonade Co"}))
	require.NoError(t, ws.Pitch.SetContent(ctx, "We sell lemonade."))

	snap, err := ws.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.Snapshot{
		ComponentCount: 12,
		Pitch:          progress.Pitch{Content: "We sell lemonade."},
		Brand:          progress.Brand{Name: "Lemonade Co"},
	}, snap)

	report, err = ws.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, report.Overall)

	ws.Financial.AddExpense(ctx, financial.NewLineItem{Name: "Lemons", Amount: 20})
	report, _ = ws.Progress(ctx)
	assert.Equal(t, progress.ToolProgress{Progress: 10, Status: progress.StatusInProgress}, report.Tools[progress.ToolFinancial])
	assert.Equal(t, 53, report.Overall) // (100+50+10+50)/4 = 52.5
}
