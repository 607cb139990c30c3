package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetsim/internal/persistence"
)

var testRunID = uuid.New()

type fakeSnapshotWriter struct {
	mu   sync.Mutex
	sets map[string]interface{}
}

func (f *fakeSnapshotWriter) Set(ctx context.Context, runID string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets == nil {
		f.sets = make(map[string]interface{})
	}
	f.sets[runID] = value
	return nil
}

func (f *fakeSnapshotWriter) get(runID string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.sets[runID]
	return v, ok
}

type fakeSnapshotStore struct {
	mu    sync.Mutex
	saved []persistence.Snapshot
}

func (f *fakeSnapshotStore) Save(ctx context.Context, runID uuid.UUID, snap persistence.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeSnapshotStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func TestSaveReturnsMarshaledSnapshot(t *testing.T) {
	rt := NewRuntime(newTestSimulation(t))
	h := NewSnapshotHandler(rt, nil, nil, testRunID)

	req := httptest.NewRequest(http.MethodGet, "/api/save", nil)
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	snap, err := persistence.Unmarshal(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), snap.Seed)
}

func TestSavePopulatesCacheWhenConfigured(t *testing.T) {
	rt := NewRuntime(newTestSimulation(t))
	fake := &fakeSnapshotWriter{}
	h := NewSnapshotHandler(rt, fake, nil, testRunID)

	req := httptest.NewRequest(http.MethodGet, "/api/save", nil)
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.Eventually(t, func() bool {
		_, ok := fake.get(currentRunCacheKey)
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestSavePersistsToStoreWhenConfigured(t *testing.T) {
	rt := NewRuntime(newTestSimulation(t))
	store := &fakeSnapshotStore{}
	h := NewSnapshotHandler(rt, nil, store, testRunID)

	req := httptest.NewRequest(http.MethodGet, "/api/save", nil)
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.Eventually(t, func() bool {
		return store.count() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestLoadReplacesRuntimeSimulation(t *testing.T) {
	rt := NewRuntime(newTestSimulation(t))
	h := NewSnapshotHandler(rt, nil, nil, testRunID)

	for i := 0; i < 10; i++ {
		rt.Get().Tick()
	}
	snap := persistence.Build(rt.Get(), 1_700_000_000_000)
	raw, err := persistence.Marshal(snap)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/load", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Load(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, rt.Get().Year)
}

func TestLoadRejectsGarbageBody(t *testing.T) {
	rt := NewRuntime(newTestSimulation(t))
	h := NewSnapshotHandler(rt, nil, nil, testRunID)

	req := httptest.NewRequest(http.MethodPost, "/api/load", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	h.Load(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
