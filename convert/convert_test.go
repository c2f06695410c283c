package convert_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpxmd/common"
	"hwpxmd/convert"
	"hwpxmd/markdown"
)

func openArchive(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r
}

func TestConvertEmptyInput(t *testing.T) {
	res, err := convert.Convert([]byte(""), "default", nil)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	r := openArchive(t, res.Bytes)
	assert.Equal(t, "mimetype", r.File[0].Name)
}

func TestConvertUnknownPresetFailsWithConfigKind(t *testing.T) {
	_, err := convert.Convert([]byte("hello"), "does-not-exist", nil)
	require.Error(t, err)

	var cErr *convert.Error
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, common.ErrorKindConfig, cErr.Kind())
}

func TestConvertUnknownOptionFailsWithConfigKind(t *testing.T) {
	_, err := convert.Convert([]byte("hello"), "default", convert.Options{"bogus": true})
	require.Error(t, err)

	var cErr *convert.Error
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, common.ErrorKindConfig, cErr.Kind())
}

func TestConvertHeadingsProduceValidArchive(t *testing.T) {
	src := "# A\n## B\n### C\n#### D\n##### E\n###### F\n"
	res, err := convert.Convert([]byte(src), "academic", convert.Options{"title": "Doc", "author": "Someone"})
	require.NoError(t, err)
	require.Empty(t, res.Warnings)

	r := openArchive(t, res.Bytes)
	names := make(map[string]bool)
	for _, f := range r.File {
		names[f.Name] = true
	}
	assert.True(t, names["Contents/section0.xml"])
	assert.True(t, names["Contents/content.hpf"])
}

func TestConvertWithImageResolver(t *testing.T) {
	src := "![alt](pic.png)\n"
	calls := 0
	resolver := convert.ImageResolver(func(src string) ([]byte, bool) {
		calls++
		return onePixelPNG(), true
	})

	res, err := convert.Convert([]byte(src), "default", convert.Options{"image_resolver": resolver})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	r := openArchive(t, res.Bytes)
	found := false
	for _, f := range r.File {
		if f.Name != "Contents/section0.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(rc)
		rc.Close()
		if bytes.Contains(buf.Bytes(), []byte(`binaryItemIDRef="0"`)) {
			found = true
		}
	}
	assert.False(t, found, "resolved image should not keep the unresolved placeholder ID")
}

func TestConvertDeterministic(t *testing.T) {
	src := "# Title\n\nSome *text* with [a link](https://example.com).\n"
	first, err := convert.Convert([]byte(src), "business", nil)
	require.NoError(t, err)
	second, err := convert.Convert([]byte(src), "business", nil)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes, second.Bytes)
}

func TestConvertFootnoteClosure(t *testing.T) {
	src := "see[^a].\n\n[^a]: note text\n\n[^orphan]: never used\n"
	res, err := convert.Convert([]byte(src), "default", nil)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, markdown.WarnOrphanFootnoteDefinition, res.Warnings[0].Kind)
}

func onePixelPNG() []byte {
	// 1x1 transparent PNG, minimal valid payload.
	return []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
		0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
		0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
		0x42, 0x60, 0x82,
	}
}
