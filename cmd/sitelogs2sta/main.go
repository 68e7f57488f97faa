// sitelogs2sta reads IGS sitelog files and generates a Bernese Station
// Information (STA) file from them.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mholt/archiver/v3"
	"github.com/urfave/cli/v2"

	"github.com/gnsslab/nrtsta/pkg/batch"
	"github.com/gnsslab/nrtsta/pkg/config"
	"github.com/gnsslab/nrtsta/pkg/site"
)

const version = "0.2.0"

func main() {
	app := &cli.App{
		Name:    "sitelogs2sta",
		Usage:   "create a Bernese STA-file from IGS sitelog formated files",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "parse sitelogs and write the STA-file",
				ArgsUsage: "[FILE...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
					&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "directory with sitelog files"},
					&cli.StringFlag{Name: "pattern", Value: "*.log", Usage: "filename pattern for the directory scan"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output STA-file, default stdout"},
					&cli.StringFlag{Name: "fmtvers", Value: "1.03", Usage: "STA-file format version: 1.01 or 1.03"},
					&cli.StringFlag{Name: "remark", Value: "SITELOG", Usage: "content of the remark column"},
					&cli.BoolFlag{Name: "gzip", Usage: "compress the written STA-file"},
				},
				Action: convert,
			},
			{
				Name:      "check",
				Usage:     "parse sitelogs and report findings without writing output",
				ArgsUsage: "FILE...",
				Action:    check,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func convert(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("dir") {
		cfg.Sitelogs.Dir = c.String("dir")
	}
	if c.IsSet("pattern") || cfg.Sitelogs.Pattern == "" {
		cfg.Sitelogs.Pattern = c.String("pattern")
	}
	if c.IsSet("out") {
		cfg.Output.Path = c.String("out")
	}
	if c.IsSet("fmtvers") || cfg.Output.FormatVersion == "" {
		cfg.Output.FormatVersion = c.String("fmtvers")
	}
	if c.IsSet("remark") {
		cfg.Output.Remark = c.String("remark")
	}
	if c.IsSet("gzip") {
		cfg.Output.Compress = c.Bool("gzip")
	}

	var sites site.Sites
	if cfg.Sitelogs.Dir != "" {
		res, err := batch.Load(cfg.Sitelogs.Dir, cfg.Sitelogs.Pattern)
		if err != nil {
			return err
		}
		for path, ferr := range res.Failed {
			log.Printf("failed: %s: %v", path, ferr)
		}
		sites = res.Sites
	}
	for _, path := range c.Args().Slice() {
		s, err := batch.LoadFile(path)
		if err != nil {
			log.Printf("failed: %s: %v", path, err)
			continue
		}
		sites = append(sites, s)
	}
	if len(sites) == 0 {
		return fmt.Errorf("no usable sitelogs found")
	}

	return writeOutput(sites, cfg.Output)
}

// writeOutput writes the STA-file to the configured destination, stdout if no
// path is set. With compression enabled only the .gz file remains on disk.
func writeOutput(sites site.Sites, out config.OutputConfig) error {
	if out.Path == "" {
		return sites.WriteBerneseSTA(os.Stdout, out.FormatVersion, out.Remark)
	}

	f, err := os.Create(out.Path)
	if err != nil {
		return err
	}
	if err := sites.WriteBerneseSTA(f, out.FormatVersion, out.Remark); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if out.Compress {
		if err := archiver.CompressFile(out.Path, out.Path+".gz"); err != nil {
			return err
		}
		return os.Remove(out.Path)
	}
	return nil
}

func check(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("check needs at least one sitelog file")
	}
	for _, path := range c.Args().Slice() {
		s, err := batch.LoadFile(path)
		if err != nil {
			fmt.Printf("%s: ERROR: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: station %s, %d receivers, %d antennas\n",
			path, s.StationID(), len(s.Receivers), len(s.Antennas))
		for _, warn := range s.Warnings {
			fmt.Printf("  WARN: %v\n", warn)
		}
		if events, err := s.StationInfo(); err == nil {
			fmt.Printf("  %d station information periods\n", len(events))
		}
	}
	return nil
}
