// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-galleryinfo/internal/core/comicinfo"
	"github.com/taibuivan/yomira-galleryinfo/internal/core/hentai"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/logger"
	"github.com/taibuivan/yomira-galleryinfo/pkg/pointer"
	"github.com/taibuivan/yomira-galleryinfo/pkg/slug"
)

// stdinInput names standard input on the command line.
const stdinInput = "-"

type convertOptions struct {
	*rootOptions
	outDir string
}

func newConvertCommand(root *rootOptions) *cobra.Command {
	options := &convertOptions{rootOptions: root}

	command := &cobra.Command{
		Use:   "convert [file...|-]",
		Short: "Convert gallery payload files into ComicInfo.xml",
		Long: `Reads one upstream gallery JSON payload per input ("-" or no argument reads stdin).

Without --out a single input is written to stdout. With --out every gallery
gets its own directory "<out>/<id> <title-slug>/ComicInfo.xml", ready to be
zipped next to the page images.

Bad inputs are logged and skipped; the command fails after processing the rest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, options, args)
		},
	}
	command.Flags().StringVarP(&options.outDir, "out", "o", "", "directory receiving one sub-directory per gallery")

	return command
}

func runConvert(cmd *cobra.Command, options *convertOptions, inputs []string) error {
	log := logger.New(cmd.ErrOrStderr(), options.debug)

	if len(inputs) == 0 {
		inputs = []string{stdinInput}
	}
	if options.outDir == "" && len(inputs) > 1 {
		return errors.New("convert: --out is required with more than one input")
	}

	var failed []string
	for _, input := range inputs {
		if err := convertOne(cmd, log, input, options.outDir); err != nil {
			failed = append(failed, input)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("convert: %d of %d inputs failed: %s", len(failed), len(inputs), strings.Join(failed, ", "))
	}
	return nil
}

// convertOne handles a single input and logs its outcome.
func convertOne(cmd *cobra.Command, log *slog.Logger, input, outDir string) error {
	log = log.With(slog.String("input", input))

	gallery, err := readGallery(cmd, input)
	if err != nil {
		log.Error("decode_failed", slog.Any("error", err))
		return err
	}
	log = log.With(slog.Int64("gallery_id", gallery.ID))

	info, err := comicinfo.FromHentai(gallery)
	if err != nil {
		if errors.Is(err, comicinfo.ErrUploadDateOutOfRange) {
			log.Error("precondition_violation",
				slog.Time("upload_date", gallery.UploadDate),
				slog.Any("error", err),
			)
		}
		return err
	}

	document, err := comicinfo.Encode(info)
	if err != nil {
		log.Error("encode_failed", slog.Any("error", err))
		return err
	}

	if outDir == "" {
		_, err := cmd.OutOrStdout().Write(document)
		return err
	}

	path := filepath.Join(outDir, exportDirName(gallery), constants.ComicInfoFileName)
	if err := writeDocument(path, document); err != nil {
		log.Error("write_failed", slog.String("path", path), slog.Any("error", err))
		return err
	}

	log.Info("comicinfo_written", slog.String("path", path))
	return nil
}

// readGallery decodes one payload, reading at most MaxPayloadBytes from any input.
func readGallery(cmd *cobra.Command, input string) (*hentai.Hentai, error) {
	if input == stdinInput {
		return hentai.DecodeGallery(io.LimitReader(cmd.InOrStdin(), constants.MaxPayloadBytes))
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return hentai.DecodeGallery(io.LimitReader(file, constants.MaxPayloadBytes))
}

// exportDirName is "<id> <title-slug>", or just the id when the title has no ASCII content.
func exportDirName(gallery *hentai.Hentai) string {
	name := strconv.FormatInt(gallery.ID, 10)
	if title := slug.From(pointer.Val(gallery.TitlePretty)); title != "" {
		name += " " + title
	}
	return name
}

func writeDocument(path string, document []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, document, 0o644)
}
