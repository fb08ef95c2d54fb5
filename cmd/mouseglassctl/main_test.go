package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aouyang1/mouseglass/api"
	"github.com/aouyang1/mouseglass/gallery"
	"github.com/aouyang1/mouseglass/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDArg(t *testing.T) {
	id, err := parseIDArg([]string{"7"})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	for _, bad := range []string{"0", "-2", "seven"} {
		_, err := parseIDArg([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestCommandsAgainstServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := store.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	records, err := gallery.LoadCatalogRecords("")
	require.NoError(t, err)
	require.NoError(t, db.SeedImages(records))

	ws, err := api.NewWebServer(db, api.ServerOptions{})
	require.NoError(t, err)
	t.Cleanup(ws.Close)
	srv := httptest.NewServer(ws.Handler())
	t.Cleanup(srv.Close)

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs(append([]string{"--server", srv.URL}, args...))
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	out := run("categories")
	assert.Contains(t, out, "Wild Mice")

	out = run("images", "--category", "pet")
	assert.Contains(t, out, "Pet Mouse Portrait")
	assert.Contains(t, out, "2 images in Pet Mice")

	out = run("favorite", "3")
	assert.Contains(t, out, "image 3 added to favorites (1 total)")

	out = run("share", "5")
	assert.Contains(t, out, "method: clipboard")
}
