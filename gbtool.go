/*
Package gbtool is a library for checking Game Boy boot ROM dumps and
maintaining the palette files used alongside them.
*/
package gbtool

import (
	"fmt"
	"io/ioutil"
	"log"

	"github.com/bodgit/gbtool/bootrom"
	"github.com/bodgit/gbtool/palette"
)

// GBTool ties the catalogue of known boot ROMs and palettes to a logger.
type GBTool struct {
	catalog *Catalog
	logger  *log.Logger
}

// New opens the catalogue stored in file. Diagnostics are written to
// logger.
func New(file string, logger *log.Logger) (*GBTool, error) {
	catalog, err := NewCatalog(file)
	if err != nil {
		return nil, err
	}
	return &GBTool{
		catalog: catalog,
		logger:  logger,
	}, nil
}

// Close closes the catalogue.
func (g *GBTool) Close() error {
	return g.catalog.Close()
}

// Catalog returns the underlying catalogue.
func (g *GBTool) Catalog() *Catalog {
	return g.catalog
}

// Register adds the boot ROM at file to the catalogue under name. The file
// must be one of the supported boot ROM sizes.
func (g *GBTool) Register(name, file string) error {
	img, err := bootrom.Open(file, bootrom.Sizes...)
	if err != nil {
		return err
	}

	id, err := g.catalog.AddBootROM(name, img)
	if err != nil {
		return err
	}
	g.logger.Printf("Registered \"%s\" as \"%s\" (%d)\n", file, name, id)

	return nil
}

// Identify returns the catalogue name of the boot ROM at file, or an empty
// string if it is not known.
func (g *GBTool) Identify(file string, sizes ...int) (string, error) {
	img, err := bootrom.Open(file, sizes...)
	if err != nil {
		return "", err
	}

	name, err := g.catalog.IdentifyBootROM(img)
	if err != nil {
		return "", err
	}
	if name == "" {
		g.logger.Printf("No match for \"%s\", with fingerprint \"%s\"\n", file, fingerprint(img.Bytes()))
	}

	return name, nil
}

// Extract writes the boot ROM stored under name to file.
func (g *GBTool) Extract(name, file string) error {
	img, err := g.catalog.BootROM(name)
	if err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("gbtool: no boot ROM named \"%s\"", name)
	}

	if err := ioutil.WriteFile(file, img.Bytes(), 0644); err != nil {
		return err
	}
	g.logger.Printf("Extracted \"%s\" to \"%s\"\n", name, file)

	return nil
}

// ImportPresets stores every palette in the TOML presets file using scheme
// s.
func (g *GBTool) ImportPresets(file string, s palette.Scheme) error {
	n, err := g.catalog.ImportPresets(file, s)
	if err != nil {
		return err
	}
	g.logger.Printf("Imported %d presets from \"%s\"\n", n, file)

	return nil
}
