package sources

import (
	"os"
	"path/filepath"
	"testing"

	"novelreader/pkg/models"

	"github.com/stretchr/testify/require"
)

func TestInitCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	store := NewStore(path)

	srcs, err := store.Init()
	require.NoError(t, err)
	require.Equal(t, Defaults(), srcs)

	// File was written and a second Init loads it back
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := store.Init()
	require.NoError(t, err)
	require.Equal(t, srcs, again)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	store := NewStore(path)

	want := []models.Source{
		{Name: "Custom", BaseURL: "https://example.com", SearchEndpoint: "/search?q={query}", Enabled: true},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
}

func TestEnabled(t *testing.T) {
	srcs := []models.Source{
		{Name: "a", Enabled: true},
		{Name: "b", Enabled: false},
		{Name: "c", Enabled: true},
	}

	enabled := Enabled(srcs)
	require.Len(t, enabled, 2)
	require.Equal(t, "a", enabled[0].Name)
	require.Equal(t, "c", enabled[1].Name)
}
