package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thebestschool/school_site/config"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, Version+"\n", out.String())
}

func TestCheckCommand(t *testing.T) {
	t.Setenv("FORMSPREE_ENDPOINT", "https://formspree.io/f/enroll")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--env-file", filepath.Join(t.TempDir(), "none.env")})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "https://formspree.io/f/enroll")
	assert.Contains(t, out.String(), "configuration ok")
}

func TestCheckCommandRejectsBadConfig(t *testing.T) {
	t.Setenv("FORMSPREE_ENDPOINT", "not a url")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"check", "--env-file", filepath.Join(t.TempDir(), "none.env")})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil); rootCmd.SetErr(nil) })

	assert.Error(t, rootCmd.Execute())
}

func TestBuildRouterServesLanding(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.GinMode = "test"

	router, store, err := buildRouter(cfg, zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Best School")
	assert.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, 0, store.Count())
}
