package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/nesrom"
	"github.com/bodgit/nesrom/palette"
	"github.com/bodgit/nesrom/tile"
	"github.com/urfave/cli/v2"
)

const defaultDB = "nesrom.db"

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

func openCatalog(c *cli.Context) (*nesrom.Catalog, *nesrom.GameDB, error) {
	db, err := nesrom.NewGameDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	return nesrom.New(db, newLogger(c)), db, nil
}

func decodeFile(file string) (*nesrom.Image, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return nesrom.Decode(b)
}

func parseColors(s string) ([]uint8, error) {
	var idx []uint8
	for _, f := range strings.Split(s, ",") {
		i, err := strconv.ParseUint(strings.TrimSpace(f), 0, 8)
		if err != nil {
			return nil, err
		}
		idx = append(idx, uint8(i))
	}
	return idx, nil
}

func tilePalette(c *cli.Context) (color.Palette, error) {
	if c.String("colors") == "" {
		return palette.Greyscale, nil
	}

	master := palette.Default
	if file := c.String("palette"); file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if master, err = palette.Decode(f); err != nil {
			return nil, err
		}
	}

	idx, err := parseColors(c.String("colors"))
	if err != nil {
		return nil, err
	}
	return palette.Subset(master, idx...)
}

func main() {
	app := cli.NewApp()

	app.Name = "nesrom"
	app.Usage = "iNES cartridge image utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"NESROM_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Describe an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "identify",
					Usage: "look up the image in the database",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if !c.Bool("identify") {
					img, err := decodeFile(c.Args().First())
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					fmt.Print(img.Describe())
					return nil
				}

				m, db, err := openCatalog(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				img, crc, name, err := m.Identify(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Print(img.Describe())
				fmt.Printf("CRC: %s\n", crc)
				if name != "" {
					fmt.Printf("Game: %s\n", name)
				}

				return nil
			},
		},
		{
			Name:        "tiles",
			Usage:       "Export graphics banks as a PNG tile sheet",
			Description: "",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "bank",
					Value: -1,
					Usage: "only export this graphics bank",
				},
				&cli.IntFlag{
					Name:  "columns",
					Value: 16,
					Usage: "tiles per row",
				},
				&cli.StringFlag{
					Name:  "palette",
					Usage: "path to .pal file",
				},
				&cli.StringFlag{
					Name:  "colors",
					Usage: "four comma separated palette indices, e.g. 0x0f,0x16,0x27,0x30",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				img, err := decodeFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				p, err := tilePalette(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var tiles [][]byte
				it := img.Tiles()
				for it.Next() {
					if bank := c.Int("bank"); bank < 0 || it.Bank() == bank {
						tiles = append(tiles, it.Tile())
					}
				}
				if err := it.Err(); err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := tile.Sheet(tiles, p, c.Int("columns"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				if err := png.Encode(f, m); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "chr",
			Usage:       "Convert an image to raw tile data",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				in, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer in.Close()

				m, _, err := image.Decode(in)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				out, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer out.Close()

				if err := tile.Encode(out, m); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Import a DAT file of known games",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := nesrom.NewGameDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := db.ImportXML(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and record images",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of concurrent directory workers",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, db, err := openCatalog(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				m.SetWorkers(c.Int("workers"))

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List scanned images",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := nesrom.NewGameDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				records, err := db.Images()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, r := range records {
					fmt.Printf("%s\t%s\tmapper %d\t%d PRG\t%d CHR\t%s\t%s\n", r.CRC, r.Path, r.Mapper, r.PrgBanks, r.ChrBanks, r.MirrorMode, r.Game)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
