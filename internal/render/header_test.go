package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFilesCarryHeader(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		data, err := os.ReadFile(file)
		require.NoError(t, err)

		lines := strings.SplitN(string(data), "\n", 3)
		require.Len(t, lines, 3, file)
		assert.True(t, strings.HasPrefix(lines[0], "// ====="), file)
		assert.True(t, strings.HasPrefix(lines[1], "// Blind Receiving Highlighter - "), file)
	}
}
