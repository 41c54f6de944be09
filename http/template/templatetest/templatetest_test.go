package templatetest_test

import (
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
	tt "github.com/xy-planning-network/rest/http/template/templatetest"
)

func TestMockFS(t *testing.T) {
	// Arrange
	mfs := tt.NewMockFS(
		tt.NewMockFile("a/b.tmpl", []byte("first")),
		tt.NewMockFile("c.tmpl", []byte("c")),
		tt.NewMockFile("a/b.tmpl", []byte("second")),
	)

	// Act
	b, err := fs.ReadFile(mfs, "a/b.tmpl")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "second", string(b))

	f, err := mfs.Open("a/b.tmpl")
	require.NoError(t, err)
	b, err = io.ReadAll(io.LimitReader(f, 3))
	require.NoError(t, err)
	require.Equal(t, "sec", string(b))
	b, err = io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "ond", string(b))
	require.NoError(t, f.Close())

	info, err := fs.Stat(mfs, "c.tmpl")
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.EqualValues(t, 1, info.Size())

	matches, err := fs.Glob(mfs, "a/*.tmpl")
	require.NoError(t, err)
	require.Equal(t, []string{"a/b.tmpl"}, matches)

	_, err = mfs.Open("missing.tmpl")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = mfs.Open("../c.tmpl")
	require.ErrorIs(t, err, fs.ErrInvalid)
}

func TestNewParserFallsBackToShippedTemplates(t *testing.T) {
	// Arrange
	p := tt.NewParser(tt.NewMockFile("greet.html.tmpl", []byte(`<p>{{ .name }}</p>`)))

	// Act
	b, err := p.Render("greet.html.tmpl", map[string]any{"name": "rest"})

	// Assert
	require.NoError(t, err)
	require.Equal(t, "<p>rest</p>", string(b))
	require.True(t, p.Exists("TwigBundle/Exception/error.html.tmpl"))
}
