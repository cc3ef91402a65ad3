package importer

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func readAllUTF8(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := toUTF8(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestToUTF8_Passthrough(t *testing.T) {
	input := "Descrição;Valor\nCafé;12,50\n"

	got, charset := readAllUTF8(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, "UTF-8", charset)
}

func TestToUTF8_Windows1252(t *testing.T) {
	// ç = 0xE7, ã = 0xE3
	input := []byte{'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';', 'V', 'a', 'l', 'o', 'r', '\n'}

	got, _ := readAllUTF8(t, input)
	assert.Equal(t, "Descrição;Valor\n", got)
}

func TestToUTF8_BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, "Descrição\n"...)

	got, charset := readAllUTF8(t, input)
	assert.Equal(t, "Descrição\n", got)
	assert.Equal(t, "UTF-8", charset)
}

func TestToUTF8_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := enc.String("Mês;Ano\n")
	require.NoError(t, err)

	got, charset := readAllUTF8(t, []byte(input))
	assert.Equal(t, "Mês;Ano\n", got)
	assert.Equal(t, "UTF-16LE", charset)
}

func TestToUTF8_RuneAcrossSniffLimit(t *testing.T) {
	// "ç" is two bytes; put its first byte at the last sniffed position.
	input := strings.Repeat("a", sniffSize-1) + "ç\n"

	got, charset := readAllUTF8(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, "UTF-8", charset)
}

func TestValidUTF8(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().String("ação")
	require.NoError(t, err)

	assert.True(t, validUTF8([]byte("ação"), false))
	assert.False(t, validUTF8([]byte(latin1), false))
	assert.True(t, validUTF8([]byte("aç")[:2], true))
	assert.False(t, validUTF8([]byte("aç")[:2], false))
}
