package scraper

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUTF8(t *testing.T) {
	body := []byte("<html><body><a href=\"/stamp/stamp.jsp?tp=&arnumber=42\">Résumé</a></body></html>")

	text, err := Decode(body, "text/html")
	require.NoError(t, err)
	assert.Equal(t, string(body), text)
}

func TestDecodeDeclaredCharset(t *testing.T) {
	body := []byte("<html><body>caf\xe9</body></html>")

	text, err := Decode(body, "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Contains(t, text, "café")
}

func TestDecodeMetaCharset(t *testing.T) {
	body := []byte(`<html><head><meta charset="windows-1251"></head><body>` + "\xcf\xf0\xe8" + `</body></html>`)

	text, err := Decode(body, "")
	require.NoError(t, err)
	assert.Contains(t, text, "При")
}

func TestDecodeBinaryBody(t *testing.T) {
	body := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

	text, err := Decode(body, "application/pdf")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDecodeEmpty(t *testing.T) {
	text, err := Decode(nil, "text/html")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDecodeTooLarge(t *testing.T) {
	body := bytes.Repeat([]byte("a"), MaxPageSize+1)

	_, err := Decode(body, "text/plain")
	assert.ErrorIs(t, err, ErrPageTooLarge)
}

func TestEncodingLabelPrefersDeclared(t *testing.T) {
	assert.Equal(t, "utf-8", EncodingLabel([]byte("plain ascii"), "text/html; charset=utf-8"))
	assert.Equal(t, "utf-8", EncodingLabel([]byte("plain ascii"), ""))
}

func TestFindFirst(t *testing.T) {
	grouped := regexp.MustCompile(`arnumber=([0-9]+)`)
	plain := regexp.MustCompile(`[0-9]+`)

	got, ok := FindFirst(grouped, "stamp.jsp?tp=&arnumber=1234")
	require.True(t, ok)
	assert.Equal(t, "1234", got)

	got, ok = FindFirst(plain, "pii 999")
	require.True(t, ok)
	assert.Equal(t, "999", got)

	_, ok = FindFirst(grouped, "nothing here")
	assert.False(t, ok)
}
