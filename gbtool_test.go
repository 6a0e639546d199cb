package gbtool

import (
	"bytes"
	"errors"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/gbtool/bootrom"
	"github.com/bodgit/gbtool/checksum"
	"github.com/bodgit/gbtool/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTool(t *testing.T) (*GBTool, *bytes.Buffer) {
	t.Helper()
	out := new(bytes.Buffer)
	g, err := New(filepath.Join(t.TempDir(), "gbtool.db"), log.New(out, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g, out
}

func writeImage(t *testing.T, file string, img *bootrom.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, ioutil.WriteFile(file, img.Bytes(), 0644))
}

func TestRegisterAndIdentify(t *testing.T) {
	g, logged := newTestTool(t)
	dir := t.TempDir()

	known := filepath.Join(dir, "dmg_boot.bin")
	writeImage(t, known, testImage(bootrom.DMGSize, 0x11))
	require.NoError(t, g.Register("dmg_boot", known))

	name, err := g.Identify(known)
	require.NoError(t, err)
	assert.Equal(t, "dmg_boot", name)

	unknown := filepath.Join(dir, "other.bin")
	writeImage(t, unknown, testImage(bootrom.DMGSize, 0x22))
	name, err = g.Identify(unknown)
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Contains(t, logged.String(), "No match for")
}

func TestRegisterWrongSize(t *testing.T) {
	g, _ := newTestTool(t)

	file := filepath.Join(t.TempDir(), "bad.bin")
	writeImage(t, file, testImage(100, 0))
	err := g.Register("bad", file)
	assert.True(t, errors.Is(err, bootrom.ErrSizeMismatch))
}

func TestScan(t *testing.T) {
	g, _ := newTestTool(t)
	dir := t.TempDir()

	dmg := testImage(bootrom.DMGSize, 0x01)
	cgb := testImage(bootrom.CGBSize, 0x02)
	_, err := g.Catalog().AddBootROM("dmg_boot", dmg)
	require.NoError(t, err)
	_, err = g.Catalog().AddBootROM("cgb_boot", cgb)
	require.NoError(t, err)

	writeImage(t, filepath.Join(dir, "a", "dmg.bin"), dmg)
	writeImage(t, filepath.Join(dir, "b", "c", "cgb.gbc"), cgb)
	writeImage(t, filepath.Join(dir, "b", "unknown.bin"), testImage(bootrom.CGBSize, 0x03))
	writeImage(t, filepath.Join(dir, "b", "odd.bin"), testImage(300, 0x01))
	writeImage(t, filepath.Join(dir, ".hidden", "dmg.bin"), dmg)

	matches, err := g.Scan(dir)
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		filepath.Join(abs, "a", "dmg.bin"):      "dmg_boot",
		filepath.Join(abs, "b", "c", "cgb.gbc"): "cgb_boot",
	}, matches)
}

func TestReport(t *testing.T) {
	g, _ := newTestTool(t)

	img := bootrom.New(append([]byte{0xff, 0x02}, make([]byte, bootrom.DMGSize-2)...))
	_, err := g.Catalog().AddBootROM("test", img)
	require.NoError(t, err)

	out := new(bytes.Buffer)
	require.NoError(t, g.Report(out, img, []checksum.Width{checksum.HalfWord, checksum.Byte}, checksum.Sum))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Reading from file with different chunk sizes (sum)", lines[0])
	assert.Equal(t, "\tChecksum reading half-words (128 hwords) = 0x2FF", lines[1])
	assert.Equal(t, "\tChecksum (256 bytes) = 0x101", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "\tCRC-32 = "))
	assert.Equal(t, "\tModel = DMG", lines[4])
	assert.Equal(t, "\tMatch = test", lines[5])
}

func TestWriteChecksums(t *testing.T) {
	img := bootrom.New(append([]byte{0xff, 0x02}, make([]byte, bootrom.CGBSize-2)...))

	out := new(bytes.Buffer)
	require.NoError(t, WriteChecksums(out, img, checksum.Widths, checksum.Fold))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Reading from file with different chunk sizes (fold)", lines[0])
	assert.Equal(t, "\tChecksum (2304 bytes) = 0x101", lines[1])
	assert.Equal(t, "\tChecksum reading half-words (1152 hwords) = 0x101", lines[2])
	assert.Equal(t, "\tChecksum reading words (576 words) = 0x101", lines[3])
	assert.Equal(t, "\tCRC-32 = "+crcBytes(img.Bytes()), lines[4])
	assert.Equal(t, "\tModel = CGB", lines[5])
}

func TestReportChecksumMatch(t *testing.T) {
	g, logged := newTestTool(t)

	known := testImage(bootrom.DMGSize, 0x11)
	_, err := g.Catalog().AddBootROM("dmg_boot", known)
	require.NoError(t, err)

	// Swapping the first two bytes keeps the byte sum but not the half-word sum
	b := append([]byte(nil), known.Bytes()...)
	b[0], b[1] = b[1], b[0]
	img := bootrom.New(b)

	out := new(bytes.Buffer)
	require.NoError(t, g.WriteMatches(out, img, []checksum.Width{checksum.HalfWord, checksum.Byte}, checksum.Sum))
	assert.Equal(t, "\tChecksum match (bytes) = dmg_boot\n", out.String())
	assert.Contains(t, logged.String(), "No match with fingerprint")

	out.Reset()
	require.NoError(t, g.WriteMatches(out, testImage(bootrom.DMGSize, 0x11), checksum.Widths, checksum.Sum))
	assert.Equal(t, "\tMatch = dmg_boot\n", out.String())
}

func TestExtract(t *testing.T) {
	g, logged := newTestTool(t)
	dir := t.TempDir()

	cgb := testImage(bootrom.CGBSize, 0x5a)
	_, err := g.Catalog().AddBootROM("cgb_boot", cgb)
	require.NoError(t, err)

	file := filepath.Join(dir, "cgb.bin")
	require.NoError(t, g.Extract("cgb_boot", file))
	assert.Contains(t, logged.String(), "Extracted \"cgb_boot\"")

	b, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, cgb.Bytes(), b)

	missing := filepath.Join(dir, "missing.bin")
	assert.Error(t, g.Extract("missing", missing))
	assert.NoFileExists(t, missing)
}

func TestImportPresets(t *testing.T) {
	g, logged := newTestTool(t)

	file := filepath.Join(t.TempDir(), "presets.toml")
	require.NoError(t, ioutil.WriteFile(file, []byte(`
[[palette]]
name = "grey"
colors = ["#FFFFFF", "#AAAAAA", "#555555", "#000000"]
`), 0644))

	require.NoError(t, g.ImportPresets(file, palette.PackedSixBit))
	assert.Contains(t, logged.String(), "Imported 1 presets")

	p, err := g.Catalog().Palette("grey")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, palette.PackedSixBit, p.Scheme)

	assert.Error(t, g.ImportPresets(filepath.Join(t.TempDir(), "missing.toml"), palette.PackedSixBit))
}
