package disposable

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etkecc/emailscore/internal/metrics"
)

func newTestChecker(t *testing.T, path string, extra ...string) *Checker {
	t.Helper()
	log := zerolog.Nop()
	return NewChecker(path, extra, time.Hour, nil, &log)
}

func writeList(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestChecker_ExtraDomains(t *testing.T) {
	c := newTestChecker(t, "", " TempMail.Test ")

	assert.True(t, c.IsDisposable("tempmail.test"))
	assert.True(t, c.IsDisposable(" TEMPMAIL.TEST"))
	assert.False(t, c.IsDisposable("example.com"))
}

func TestChecker_MissingFileFailsOpen(t *testing.T) {
	c := newTestChecker(t, filepath.Join(t.TempDir(), "missing.txt"))

	assert.False(t, c.IsDisposable("mailinator.com"))
}

func TestChecker_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disposable_domains.txt")
	writeList(t, path, "# comment\n\nMailinator.com\r\n  guerrillamail.com  \n#ignored.com\n")
	c := newTestChecker(t, path)

	assert.True(t, c.IsDisposable("mailinator.com"))
	assert.True(t, c.IsDisposable("GuerrillaMail.com"))
	assert.False(t, c.IsDisposable("ignored.com"))
	assert.False(t, c.IsDisposable("#ignored.com"))
	assert.False(t, c.IsDisposable("example.com"))
	assert.Equal(t, 2, c.Len())
}

func TestChecker_ReloadsOnModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disposable_domains.txt")
	writeList(t, path, "mailinator.com\n")
	c := newTestChecker(t, path)
	require.False(t, c.IsDisposable("yopmail.com"))

	writeList(t, path, "mailinator.com\nyopmail.com\n")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))

	assert.True(t, c.IsDisposable("yopmail.com"))
}

func TestChecker_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disposable_domains.txt")
	writeList(t, path, "mailinator.com\nyopmail.com\n")
	m := metrics.New(prometheus.NewRegistry())
	log := zerolog.Nop()
	c := NewChecker(path, nil, 0, m, &log)

	require.NoError(t, c.Reload())
	assert.Equal(t, 2, c.Len())
	assert.InDelta(t, 2, testutil.ToFloat64(m.DisposableDomains), 0)

	require.NoError(t, os.Remove(path))
	require.Error(t, c.Reload())
	assert.False(t, c.IsDisposable("mailinator.com"), "fails open when the file is gone")
}
