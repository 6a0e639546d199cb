package gbtool

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/bodgit/gbtool/bootrom"
	"github.com/bodgit/gbtool/checksum"
)

func crcBytes(b []byte) string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(b))
}

func checksumLine(width checksum.Width, units int, sum uint32) string {
	switch width {
	case checksum.HalfWord:
		return fmt.Sprintf("\tChecksum reading half-words (%d hwords) = 0x%X\n", units, sum)
	case checksum.Word:
		return fmt.Sprintf("\tChecksum reading words (%d words) = 0x%X\n", units, sum)
	}
	return fmt.Sprintf("\tChecksum (%d bytes) = 0x%X\n", units, sum)
}

// WriteChecksums writes the checksum of img at each of the given widths
// using mode m, followed by the CRC-32 of the whole image. It needs no
// catalogue.
func WriteChecksums(w io.Writer, img *bootrom.Image, widths []checksum.Width, m checksum.Mode) error {
	b := img.Bytes()

	if _, err := fmt.Fprintf(w, "Reading from file with different chunk sizes (%s)\n", m); err != nil {
		return err
	}

	for _, width := range widths {
		if _, err := io.WriteString(w, checksumLine(width, len(b)/width.Bytes(), checksum.Checksum(b, width, m))); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\tCRC-32 = %s\n", crcBytes(b)); err != nil {
		return err
	}

	if model := bootrom.Model(img.Len()); model != "" {
		if _, err := fmt.Fprintf(w, "\tModel = %s\n", model); err != nil {
			return err
		}
	}

	return nil
}

// WriteMatches writes the catalogue entry img matches. If the image itself
// is not known then any entry sharing one of its checksums at the given
// widths is listed instead.
func (g *GBTool) WriteMatches(w io.Writer, img *bootrom.Image, widths []checksum.Width, m checksum.Mode) error {
	b := img.Bytes()

	name, err := g.catalog.IdentifyBootROM(img)
	if err != nil {
		return err
	}
	if name != "" {
		_, err = fmt.Fprintf(w, "\tMatch = %s\n", name)
		return err
	}
	g.logger.Printf("No match with fingerprint \"%s\"\n", fingerprint(b))

	for _, width := range widths {
		names, err := g.catalog.FindByChecksum(width, m, checksum.Checksum(b, width, m))
		if err != nil {
			return err
		}
		if len(names) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\tChecksum match (%s) = %s\n", width, strings.Join(names, ", ")); err != nil {
			return err
		}
	}

	return nil
}

// Report writes the output of WriteChecksums followed by that of
// WriteMatches.
func (g *GBTool) Report(w io.Writer, img *bootrom.Image, widths []checksum.Width, m checksum.Mode) error {
	if err := WriteChecksums(w, img, widths, m); err != nil {
		return err
	}
	return g.WriteMatches(w, img, widths, m)
}
