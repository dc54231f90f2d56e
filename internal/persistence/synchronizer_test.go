package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTier is an in-memory Tier with injectable failures.
type memTier struct {
	name     string
	mu       sync.Mutex
	data     []byte
	writeErr error
	readErr  error
	writes   int
}

func (m *memTier) Name() string { return m.name }

func (m *memTier) Read(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.data == nil {
		return nil, ErrNoState
	}
	return m.data, nil
}

func (m *memTier) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memTier) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func (m *memTier) stored(t *testing.T) domain.ProjectState {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotNil(t, m.data, "%s tier is empty", m.name)
	st, err := Decode(m.data)
	require.NoError(t, err)
	return st
}

func sampleState() domain.ProjectState {
	s := testutil.NewTestState(testutil.NewTestPlan())
	s.Resources = []domain.Resource{testutil.NewTestResource("Ann", "ann@example.com", domain.RoleDeveloper)}
	s.AIConfig.APIKey = "sk-test"
	return s.Clone()
}

func newSQLiteSync(t *testing.T, opts ...Option) (*Synchronizer, *FileTier) {
	t.Helper()
	file := NewFileTier(StaticPicker{Dir: t.TempDir()})
	s := New(NewSQLiteTier(testutil.NewTestDB(t)), append([]Option{WithFileTier(file)}, opts...)...)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s, file
}

func TestSave_LoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, file := newSQLiteSync(t)
	want := sampleState()

	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	require.NoError(t, s.Flush(ctx))
	assert.FileExists(t, file.Path())
	assert.Equal(t, DataFileName, filepath.Base(file.Path()))
}

func TestLoad_BothTiersEmpty(t *testing.T) {
	s, _ := newSQLiteSync(t)
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoad_FastTierWinsWithoutReadingFile(t *testing.T) {
	ctx := context.Background()
	fast := &memTier{name: "fast"}
	file := &memTier{name: "file", readErr: errors.New("must not be read")}
	s := New(fast, WithFileTier(file))

	st := sampleState()
	data, err := Encode(st, false)
	require.NoError(t, err)
	fast.data = data

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, *got)
}

func TestLoad_FallsBackToFileAndBackfills(t *testing.T) {
	ctx := context.Background()
	fast := &memTier{name: "fast"}
	file := &memTier{name: "file"}
	s := New(fast, WithFileTier(file))

	st := sampleState()
	data, err := Encode(st, true)
	require.NoError(t, err)
	file.data = data

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, st, *got)
	assert.Equal(t, st, fast.stored(t), "fast tier backfilled")

	file.readErr = errors.New("file tier must not be consulted again")
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, *again)
}

func TestLoad_CorruptSnapshotsAreNoState(t *testing.T) {
	fast := &memTier{name: "fast", data: []byte(`{not json`)}
	file := &memTier{name: "file", data: []byte(`{"tasks":[{"id":"t","status":"blocked","priority":"high"}]}`)}
	s := New(fast, WithFileTier(file))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_FastTierFailureIsFatal(t *testing.T) {
	fast := &memTier{name: "fast", writeErr: errors.New("quota exceeded")}
	file := &memTier{name: "file"}
	s := New(fast, WithFileTier(file))

	err := s.Save(context.Background(), sampleState())
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "fast", perr.Tier)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	require.NoError(t, s.Flush(context.Background()))
	assert.Zero(t, file.writes, "nothing mirrored after a failed save")
}

func TestSave_FileTierFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	fast := &memTier{name: "fast"}
	file := &memTier{name: "file", writeErr: errors.New("disk unplugged")}
	var warnings []*domain.PersistenceWarning
	var mu sync.Mutex
	s := New(fast, WithFileTier(file), WithWarningHandler(func(w *domain.PersistenceWarning) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, w)
	}))

	require.NoError(t, s.Save(ctx, sampleState()))
	_ = s.Flush(ctx)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, warnings, 1)
	assert.Equal(t, "file", warnings[0].Tier)
	assert.NotErrorIs(t, warnings[0], domain.ErrPersistence)
	assert.Equal(t, sampleState(), fast.stored(t))
}

func TestSave_DeclinedPickerIsWarning(t *testing.T) {
	ctx := context.Background()
	var got error
	s := New(NewSQLiteTier(testutil.NewTestDB(t)),
		WithFileTier(NewFileTier(DeclinePicker{})),
		WithWarningHandler(func(w *domain.PersistenceWarning) { got = w }),
	)
	require.NoError(t, s.Save(ctx, sampleState()))
	_ = s.Flush(ctx)
	assert.ErrorIs(t, got, ErrPickerDeclined)
}

func TestSave_FileMirrorLandsLatest(t *testing.T) {
	ctx := context.Background()
	s, file := newSQLiteSync(t)

	st := sampleState()
	for i := 0; i < 10; i++ {
		st.Project.Name = "rev " + string(rune('0'+i))
		require.NoError(t, s.Save(ctx, st))
	}
	require.NoError(t, s.Flush(ctx))

	data, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	onDisk, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "rev 9", onDisk.Project.Name)
}

func TestSavePartial_ReplacesOneField(t *testing.T) {
	ctx := context.Background()
	s, _ := newSQLiteSync(t)
	st := sampleState()
	require.NoError(t, s.Save(ctx, st))

	resources := []domain.Resource{testutil.NewTestResource("Bo", "bo@example.com", domain.RoleQA)}
	require.NoError(t, s.SavePartial(ctx, FieldResources, resources))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, resources, got.Resources)
	assert.Equal(t, st.Tasks, got.Tasks)
	assert.Equal(t, st.Project, got.Project)
}

func TestSavePartial_WithoutUpdater(t *testing.T) {
	ctx := context.Background()
	fast := &memTier{name: "fast"}
	s := New(fast)

	require.NoError(t, s.SavePartial(ctx, FieldAIConfig, domain.AIConfig{Provider: domain.ProviderGemini, APIKey: "k"}))
	got := fast.stored(t)
	assert.Equal(t, domain.ProviderGemini, got.AIConfig.Provider)
	assert.Empty(t, got.Tasks)
}

func TestSavePartial_Rejects(t *testing.T) {
	ctx := context.Background()
	s, _ := newSQLiteSync(t)

	assert.ErrorIs(t, s.SavePartial(ctx, Field("settings"), 1), domain.ErrValidation)
	assert.ErrorIs(t, s.SavePartial(ctx, FieldTasks, []map[string]string{{"status": "blocked"}}), domain.ErrValidation)
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backup := filepath.Join(t.TempDir(), "exports", BackupFileName)
	s, _ := newSQLiteSync(t, WithPicker(StaticPicker{Path: backup}))
	want := sampleState()

	path, err := s.ExportToFile(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, backup, path)

	require.NoError(t, s.Clear(ctx))
	got, err := s.ImportFromFile(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *loaded, "import replaces the fast tier")
}

func TestImport_Failures(t *testing.T) {
	ctx := context.Background()

	s := New(&memTier{name: "fast"})
	_, err := s.ImportFromFile(ctx)
	assert.ErrorIs(t, err, ErrPickerDeclined)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[1,2`), 0o644))
	s = New(&memTier{name: "fast"}, WithPicker(StaticPicker{Path: bad}))
	_, err = s.ImportFromFile(ctx)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClear_RemovesCacheAndBlanksFile(t *testing.T) {
	ctx := context.Background()
	s, file := newSQLiteSync(t)
	require.NoError(t, s.Save(ctx, sampleState()))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Flush(ctx))

	data, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	onDisk, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyState(), onDisk)

	// The blank file is still a readable snapshot, so Load falls back to it.
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.HasPlan())
}

func TestEncode_FileShape(t *testing.T) {
	data, err := Encode(domain.EmptyState(), true)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"project": null,
		"epics": [], "stories": [], "tasks": [], "resources": [],
		"aiConfig": {"provider": "openai", "apiKey": ""}
	}`, string(data))
}
