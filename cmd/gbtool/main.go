package main

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/bodgit/gbtool"
	"github.com/bodgit/gbtool/bootrom"
	"github.com/bodgit/gbtool/checksum"
	"github.com/bodgit/gbtool/hexdump"
	"github.com/bodgit/gbtool/palette"
	"github.com/urfave/cli/v2"
)

const defaultDB = "gbtool.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func open(c *cli.Context) (*gbtool.GBTool, error) {
	return gbtool.New(c.String("db"), newLogger(c))
}

func exists(file string) bool {
	_, err := os.Stat(file)
	return err == nil
}

func sizes(c *cli.Context) []int {
	if c.Bool("any-size") {
		return nil
	}
	if s := c.IntSlice("size"); len(s) > 0 {
		return s
	}
	return bootrom.Sizes
}

func widths(c *cli.Context) ([]checksum.Width, error) {
	s := c.StringSlice("width")
	if len(s) == 0 {
		// Widest first, matching the historical output
		return []checksum.Width{checksum.HalfWord, checksum.Byte}, nil
	}
	w := make([]checksum.Width, 0, len(s))
	for _, v := range s {
		width, err := checksum.ParseWidth(v)
		if err != nil {
			return nil, err
		}
		w = append(w, width)
	}
	return w, nil
}

func checksumAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	w, err := widths(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	m, err := checksum.ParseMode(c.String("mode"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	img, err := bootrom.Open(c.Args().First(), sizes(c)...)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if c.Bool("dump") {
		if err := hexdump.Write(c.App.Writer, img.Bytes()); err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintln(c.App.Writer)
	}

	if err := gbtool.WriteChecksums(c.App.Writer, img, w, m); err != nil {
		return cli.NewExitError(err, 1)
	}

	// The catalogue only adds to the report, it is never created here
	if !c.IsSet("db") && !exists(c.String("db")) {
		return nil
	}

	logger := newLogger(c)
	g, err := gbtool.New(c.String("db"), logger)
	if err != nil {
		logger.Println(err)
		return nil
	}
	defer g.Close()

	if err := g.WriteMatches(c.App.Writer, img, w, m); err != nil {
		logger.Println(err)
	}

	return nil
}

func dumpAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	img, err := bootrom.Open(c.Args().First(), sizes(c)...)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := hexdump.Write(c.App.Writer, img.Bytes()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func paletteColors(c *cli.Context) ([palette.NumColors]palette.Color, error) {
	switch {
	case c.String("image") != "":
		f, err := os.Open(c.String("image"))
		if err != nil {
			return [palette.NumColors]palette.Color{}, err
		}
		defer f.Close()

		return palette.DecodeImage(f)
	case c.String("preset") != "":
		g, err := open(c)
		if err != nil {
			return [palette.NumColors]palette.Color{}, err
		}
		defer g.Close()

		p, err := g.Catalog().Palette(c.String("preset"))
		if err != nil {
			return [palette.NumColors]palette.Color{}, err
		}
		if p == nil {
			return [palette.NumColors]palette.Color{}, fmt.Errorf("no such preset \"%s\"", c.String("preset"))
		}
		return p.Colors, nil
	default:
		return palette.NewPrompter(os.Stdin, c.App.Writer).Colors()
	}
}

func paletteAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s, err := palette.ParseScheme(c.String("scheme"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	colors, err := paletteColors(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := palette.WriteFile(c.Args().First(), colors, s); err != nil {
		return cli.NewExitError(err, 1)
	}

	if name := c.String("save"); name != "" {
		g, err := open(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer g.Close()

		if err := g.Catalog().AddPalette(name, &palette.Palette{Colors: colors, Scheme: s}); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	return nil
}

func showAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s, err := palette.ParseScheme(c.String("scheme"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	p, err := palette.ReadFile(c.Args().First(), s)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for i, color := range p.Colors {
		fmt.Fprintf(c.App.Writer, "Color %d: %s\n", i+1, color)
	}

	return nil
}

func registerAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	g, err := open(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer g.Close()

	if err := g.Register(c.Args().Get(0), c.Args().Get(1)); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func identifyAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	g, err := open(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer g.Close()

	name, err := g.Identify(c.Args().First(), sizes(c)...)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if name == "" {
		return cli.NewExitError("no match", 1)
	}

	fmt.Fprintln(c.App.Writer, name)

	return nil
}

func scanAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	g, err := open(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer g.Close()

	matches, err := g.Scan(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	files := make([]string, 0, len(matches))
	for file := range matches {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Fprintf(c.App.Writer, "%s: %s\n", file, matches[file])
	}

	return nil
}

func presetsAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s, err := palette.ParseScheme(c.String("scheme"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	g, err := open(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer g.Close()

	if err := g.ImportPresets(c.Args().First(), s); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func extractAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	g, err := open(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer g.Close()

	if err := g.Extract(c.Args().Get(0), c.Args().Get(1)); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "gbtool"
	app.Usage = "Game Boy boot ROM and palette utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GBTOOL_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	sizeFlags := []cli.Flag{
		&cli.IntSliceFlag{
			Name:  "size",
			Usage: "accepted boot ROM size in bytes, may be repeated",
		},
		&cli.BoolFlag{
			Name:  "any-size",
			Usage: "accept a boot ROM of any size",
		},
	}

	schemeFlag := &cli.StringFlag{
		Name:    "scheme",
		EnvVars: []string{"GBTOOL_SCHEME"},
		Value:   palette.AlignedEightBit.String(),
		Usage:   "palette layout, either \"aligned\" or \"packed\"",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "checksum",
			Usage:       "Validate a boot ROM and print its checksums",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: append([]cli.Flag{
				&cli.StringSliceFlag{
					Name:  "width",
					Usage: "unit width in bits, one of 8, 16 or 32, may be repeated",
				},
				&cli.StringFlag{
					Name:  "mode",
					Value: checksum.Fold.String(),
					Usage: "\"fold\" adds each byte of a unit, \"sum\" adds the whole unit",
				},
				&cli.BoolFlag{
					Name:  "dump",
					Usage: "print the contents of the file first",
				},
			}, sizeFlags...),
			Action: checksumAction,
		},
		{
			Name:        "dump",
			Usage:       "Print the contents of a boot ROM",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       sizeFlags,
			Action:      dumpAction,
		},
		{
			Name:        "palette",
			Usage:       "Create a palette file",
			Description: "Colors are read from standard input unless an image or preset is given",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				schemeFlag,
				&cli.StringFlag{
					Name:  "image",
					Usage: "pick the colors from an image",
				},
				&cli.StringFlag{
					Name:  "preset",
					Usage: "use a palette from the database",
				},
				&cli.StringFlag{
					Name:  "save",
					Usage: "also store the palette in the database under this name",
				},
			},
			Action: paletteAction,
		},
		{
			Name:        "show",
			Usage:       "Print the colors in a palette file",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       []cli.Flag{schemeFlag},
			Action:      showAction,
		},
		{
			Name:        "register",
			Usage:       "Add a boot ROM to the database",
			Description: "",
			ArgsUsage:   "NAME FILE",
			Action:      registerAction,
		},
		{
			Name:        "extract",
			Usage:       "Write a boot ROM from the database to a file",
			Description: "",
			ArgsUsage:   "NAME FILE",
			Action:      extractAction,
		},
		{
			Name:        "identify",
			Usage:       "Look up a boot ROM in the database",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       sizeFlags,
			Action:      identifyAction,
		},
		{
			Name:        "scan",
			Usage:       "Identify every boot ROM in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action:      scanAction,
		},
		{
			Name:        "presets",
			Usage:       "Import palettes from a TOML file",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       []cli.Flag{schemeFlag},
			Action:      presetsAction,
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
