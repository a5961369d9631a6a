package main

import (
	"errors"
	"github.com/bunsenmcdubbs/torrentinfo"
	"github.com/bunsenmcdubbs/torrentinfo/internal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"os"
	"path/filepath"
)

var log, _ = zap.NewProduction()

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the report to `FILE` instead of stdout",
	}
}

func main() {
	err := newApp().Run(os.Args)
	_ = log.Sync()
	if err != nil {
		log.Fatal("torrentinfo failed", zap.Error(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "torrentinfo",
		Usage:     "inspect BitTorrent metainfo files",
		ArgsUsage: "TORRENT",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log debug output to stderr"},
		},
		Before: func(ctx *cli.Context) error {
			if !ctx.Bool("verbose") {
				return nil
			}
			dev, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			log = dev
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "show a summary of the torrent",
				ArgsUsage: "TORRENT",
				Flags:     []cli.Flag{outputFlag()},
				Action:    handleInfo,
			},
			{
				Name:      "files",
				Usage:     "list the files in the torrent",
				ArgsUsage: "TORRENT",
				Flags: []cli.Flag{
					outputFlag(),
					&cli.BoolFlag{Name: "sort-by-smallest", Aliases: []string{"s"}, Usage: "sort by size, smallest first"},
					&cli.BoolFlag{Name: "sort-by-largest", Aliases: []string{"l"}, Usage: "sort by size, largest first"},
					&cli.BoolFlag{Name: "show-in-bytes", Aliases: []string{"b"}, Usage: "show sizes in bytes"},
					&cli.BoolFlag{Name: "no-file-size", Usage: "do not show sizes"},
				},
				Action: handleFiles,
			},
			{
				Name:      "magnet",
				Usage:     "print the magnet link for the torrent",
				ArgsUsage: "TORRENT",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "full", Usage: "include the name and trackers"},
				},
				Action: handleMagnet,
			},
		},
	}
}

func loadArg(ctx *cli.Context) (string, torrentinfo.Metainfo, error) {
	if ctx.NArg() != 1 {
		return "", torrentinfo.Metainfo{}, errors.New("expected exactly one path to a torrent file")
	}
	path := ctx.Args().First()
	meta, err := torrentinfo.LoadFile(path)
	if err != nil {
		return "", torrentinfo.Metainfo{}, err
	}
	log.Debug("loaded torrent",
		zap.String("path", path),
		zap.String("infohash", meta.InfoHashHex()),
		zap.Int("files", len(meta.Files)),
	)
	return path, meta, nil
}

func sink(ctx *cli.Context) internal.Sink {
	return internal.Sink{Stdout: ctx.App.Writer, Path: ctx.String("output"), Logger: log}
}

func handleInfo(ctx *cli.Context) error {
	path, meta, err := loadArg(ctx)
	if err != nil {
		return err
	}
	report := torrentinfo.Summary(meta, torrentinfo.SummaryOptions{SourceName: filepath.Base(path)})
	return sink(ctx).Commit(report)
}

func handleFiles(ctx *cli.Context) error {
	opts, err := fileListOptions(ctx)
	if err != nil {
		return err
	}
	_, meta, err := loadArg(ctx)
	if err != nil {
		return err
	}
	return sink(ctx).Commit(torrentinfo.FileList(meta, opts))
}

func fileListOptions(ctx *cli.Context) (torrentinfo.FileListOptions, error) {
	smallest, largest := ctx.Bool("sort-by-smallest"), ctx.Bool("sort-by-largest")
	if smallest && largest {
		return torrentinfo.FileListOptions{}, errors.New("--sort-by-smallest and --sort-by-largest are mutually exclusive")
	}
	opts := torrentinfo.FileListOptions{
		SortBySize:    smallest || largest,
		SmallestFirst: smallest,
	}
	switch {
	case ctx.Bool("no-file-size"):
		opts.Sizes = torrentinfo.SizeHidden
	case ctx.Bool("show-in-bytes"):
		opts.Sizes = torrentinfo.SizeBytes
	}
	return opts, nil
}

func handleMagnet(ctx *cli.Context) error {
	_, meta, err := loadArg(ctx)
	if err != nil {
		return err
	}
	link := torrentinfo.Magnet(meta, torrentinfo.MagnetOptions{Full: ctx.Bool("full")})
	return internal.Sink{Stdout: ctx.App.Writer, Logger: log}.Commit(link + "\n")
}
