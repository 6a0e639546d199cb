package gbtool

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/gbtool/bootrom"
	"github.com/bodgit/gbtool/checksum"
	"github.com/bodgit/gbtool/palette"
	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

var errCorrupt = errors.New("gbtool: stored boot ROM is corrupt")

// Catalog is a database of known boot ROMs and named palettes.
type Catalog struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCatalog opens or creates the catalogue stored in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS bootrom (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, size INTEGER NOT NULL, fingerprint TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, image BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS checksum (bootrom_id INTEGER NOT NULL, width INTEGER NOT NULL, mode INTEGER NOT NULL, value INTEGER NOT NULL, UNIQUE(bootrom_id, width, mode), FOREIGN KEY(bootrom_id) REFERENCES bootrom(id) ON DELETE CASCADE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, scheme INTEGER NOT NULL, record BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Catalog{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}

func fingerprint(b []byte) string {
	return fmt.Sprintf("%016X", xxhash.Sum64(b))
}

// AddBootROM stores img under name along with its checksums at every width
// and mode. Adding an image that is already known under another name
// returns the existing entry's ID.
func (c *Catalog) AddBootROM(name string, img *bootrom.Image) (int64, error) {
	b := img.Bytes()
	fp := fingerprint(b)

	var id int64
	switch err := c.db.QueryRow("SELECT id FROM bootrom WHERE fingerprint = ?", fp).Scan(&id); err {
	case sql.ErrNoRows:
	case nil:
		return id, nil
	default:
		return 0, err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec("INSERT INTO bootrom (name, size, fingerprint, crc, image) VALUES (?, ?, ?, ?, ?)", name, len(b), fp, crcBytes(b), c.enc.EncodeAll(b, nil))
	if err != nil {
		return 0, err
	}
	if id, err = result.LastInsertId(); err != nil {
		return 0, err
	}

	for _, w := range checksum.Widths {
		for _, m := range []checksum.Mode{checksum.Fold, checksum.Sum} {
			if _, err := tx.Exec("INSERT INTO checksum (bootrom_id, width, mode, value) VALUES (?, ?, ?, ?)", id, int(w), int(m), int64(checksum.Checksum(b, w, m))); err != nil {
				return 0, err
			}
		}
	}

	return id, tx.Commit()
}

// IdentifyBootROM returns the name img is stored under, or an empty string
// if it is not known.
func (c *Catalog) IdentifyBootROM(img *bootrom.Image) (string, error) {
	var name string
	switch err := c.db.QueryRow("SELECT name FROM bootrom WHERE fingerprint = ?", fingerprint(img.Bytes())).Scan(&name); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return name, nil
	default:
		return "", err
	}
}

// FindByChecksum returns the names of every boot ROM whose checksum at the
// given width and mode equals sum.
func (c *Catalog) FindByChecksum(w checksum.Width, m checksum.Mode, sum uint32) ([]string, error) {
	rows, err := c.db.Query("SELECT b.name FROM checksum AS c JOIN bootrom AS b ON c.bootrom_id = b.id WHERE c.width = ? AND c.mode = ? AND c.value = ? ORDER BY b.name", int(w), int(m), int64(sum))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// BootROM returns the boot ROM stored under name, or nil if there is no such
// entry.
func (c *Catalog) BootROM(name string) (*bootrom.Image, error) {
	var fp string
	var compressed []byte
	switch err := c.db.QueryRow("SELECT fingerprint, image FROM bootrom WHERE name = ?", name).Scan(&fp, &compressed); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		b, err := c.dec.DecodeAll(compressed, nil)
		if err != nil {
			return nil, err
		}
		if fingerprint(b) != fp {
			return nil, errCorrupt
		}
		return bootrom.New(b), nil
	default:
		return nil, err
	}
}

// AddPalette stores p under name, replacing any existing palette with the
// same name.
func (c *Catalog) AddPalette(name string, p *palette.Palette) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO palette (name, scheme, record) VALUES (?, ?, ?)", name, int(p.Scheme), b); err != nil {
		return err
	}
	return nil
}

// Palette returns the palette stored under name, or nil if there is no such
// entry.
func (c *Catalog) Palette(name string) (*palette.Palette, error) {
	var scheme int
	var record []byte
	switch err := c.db.QueryRow("SELECT scheme, record FROM palette WHERE name = ?", name).Scan(&scheme, &record); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		p := &palette.Palette{Scheme: palette.Scheme(scheme)}
		if err := p.UnmarshalBinary(record); err != nil {
			return nil, fmt.Errorf("gbtool: palette \"%s\": %w", name, err)
		}
		return p, nil
	default:
		return nil, err
	}
}

// ImportPresets reads a TOML presets file and stores every palette in it
// using scheme s.
func (c *Catalog) ImportPresets(file string, s palette.Scheme) (int, error) {
	presets, err := palette.ReadPresetsFile(file)
	if err != nil {
		return 0, err
	}
	for _, p := range presets {
		if err := c.AddPalette(p.Name, &palette.Palette{Colors: p.Palette(), Scheme: s}); err != nil {
			return 0, err
		}
	}
	return len(presets), nil
}
