package credential

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"lol-overlay/internal/config"
	"lol-overlay/internal/database"
	"lol-overlay/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsable(t *testing.T) {
	assert.True(t, Usable("RGAPI-50c19471-ea4c-409d-9637-2741fc955b4b"))
	assert.False(t, Usable(""))
	assert.False(t, Usable("RGAPI-XXXXXXXX-XXXX"))
}

func TestGetSet(t *testing.T) {
	cred := New("RGAPI-old")
	assert.Equal(t, "RGAPI-old", cred.Get())

	cred.Set("RGAPI-new")
	assert.Equal(t, "RGAPI-new", cred.Get())
}

func TestConcurrentAccess(t *testing.T) {
	cred := New("RGAPI-old")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cred.Set("RGAPI-new")
		}()
		go func() {
			defer wg.Done()
			_ = cred.Get()
		}()
	}
	wg.Wait()

	assert.Equal(t, "RGAPI-new", cred.Get())
}

func newTestRepo(t *testing.T) *repository.CredentialRepository {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "overlay.db")}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewCredentialRepository(db, zerolog.Nop())
}

func TestResolvePrefersStoredCredential(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Store(context.Background(), "RGAPI-stored"))
	t.Setenv("RIOT_API_KEY", "RGAPI-from-env")

	cred, err := Resolve(repo, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "RGAPI-stored", cred.Get())
}

func TestResolveFallsBackToEnvironment(t *testing.T) {
	repo := newTestRepo(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-from-env")

	cred, err := Resolve(repo, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "RGAPI-from-env", cred.Get())
}

func TestResolveRejectsPlaceholder(t *testing.T) {
	repo := newTestRepo(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-XXXXXXXX-XXXX-XXXX")

	cred, err := Resolve(repo, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, cred.Get())
}
