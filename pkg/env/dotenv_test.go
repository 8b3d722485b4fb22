package env

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PATCHLINK_TEST_A=file\nPATCHLINK_TEST_B=file\n"), 0644))
	t.Setenv(FileEnvVar, path)
	t.Setenv("PATCHLINK_TEST_B", "process")
	fileOnce, fileVars = sync.Once{}, nil

	require.Equal(t, "file", Getenv("PATCHLINK_TEST_A"))
	require.Equal(t, "process", Getenv("PATCHLINK_TEST_B"))
	require.Empty(t, Getenv("PATCHLINK_TEST_C"))
}
