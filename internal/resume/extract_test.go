package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docxBytes(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	data := docxBytes(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Senior Python engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>6 years experience</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := Extractor{}.Extract(data, MimeDOCX)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Python engineer")
	assert.Contains(t, text, "6 years experience")
	// Paragraph boundaries must not glue words together.
	assert.NotContains(t, text, "engineer6")
}

func TestExtractDOCXWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extractor{}.Extract(buf.Bytes(), MimeDOCX)
	assert.Error(t, err)
}

func TestExtractUnsupportedType(t *testing.T) {
	_, err := Extractor{}.Extract([]byte("plain text"), "text/plain")
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestMimeFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"resume.pdf", MimePDF},
		{"Resume.PDF", MimePDF},
		{"cv.docx", MimeDOCX},
		{"cv.DOCX", MimeDOCX},
		{"notes.txt", ""},
		{"archive.tar.gz", ""},
		{"noextension", ""},
		{"pdf", ""}, // a bare name matching an extension is not that type
		{"docx", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, MimeFromFilename(tc.name), tc.name)
	}
}
