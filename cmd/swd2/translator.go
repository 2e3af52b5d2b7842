package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swd2tools/swd2/internal/translator"
)

type fileFlags struct {
	src   string
	dst   string
	force bool
}

type batchFlags struct {
	ext   string
	dst   string
	force bool
}

func (a *app) translatorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translator",
		Short: "Compress and decompress game text tables",
	}
	cmd.AddCommand(
		a.fileCommand("compress", "Compress a CSV file into the game format", false),
		a.fileCommand("decompress", "Decompress a game file into CSV", true),
		a.batchCommand("compress-all", "Compress every matching file of the working directory", false),
		a.batchCommand("decompress-all", "Decompress every matching file of the working directory", true),
	)
	return cmd
}

func (a *app) fileCommand(use, short string, decode bool) *cobra.Command {
	var f fileFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force := a.cfg.Translator.Force
			if cmd.Flags().Changed("force") {
				force = f.force
			}
			src := a.resolve(f.src)
			dst := a.resolve(f.dst)

			tr := translator.New(translator.WithLogger(a.logger))
			var res translator.Result
			if decode {
				if dst == "" {
					dst = translator.DecodedName(src)
				}
				res = tr.Decode(src, dst, force)
			} else {
				if dst == "" {
					dst = translator.EncodedName(src)
				}
				res = tr.Encode(src, dst, force)
			}

			if !res.OK() {
				return failure(fmt.Errorf("%w: %s", errOperationFailed, res.Status))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.src, "src", "", "source file")
	cmd.Flags().StringVar(&f.dst, "dst", "", "target file")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "overwrite an existing target")
	_ = cmd.MarkFlagRequired("src")
	return cmd
}

func (a *app) batchCommand(use, short string, decode bool) *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.cfg.Translator
			ext := opts.CompressExt
			if decode {
				ext = opts.DecompressExt
			}
			outDir := opts.OutDir
			force := opts.Force
			flags := cmd.Flags()
			if flags.Changed("ext") {
				ext = f.ext
			}
			if flags.Changed("dst") {
				outDir = f.dst
			}
			if flags.Changed("force") {
				force = f.force
			}

			tr := translator.New(translator.WithLogger(a.logger))
			process := tr.EncodeAll
			if decode {
				process = tr.DecodeAll
			}
			report, err := process(a.workDir, ext, a.resolve(outDir), force)
			if err != nil {
				return failure(err)
			}

			if err := printReport(a.stdout, a.workDir, report, a.logging.Capabilities.SupportsColor()); err != nil {
				return failure(err)
			}
			if !report.OK() {
				return failure(errBatchIncomplete)
			}
			return nil
		},
	}
	defaultExt := translator.DefaultCompressExt
	if decode {
		defaultExt = translator.DefaultDecompressExt
	}
	cmd.Flags().StringVar(&f.ext, "ext", defaultExt, "extension of the files to process")
	cmd.Flags().StringVar(&f.dst, "dst", translator.DefaultOutDir, "output directory")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "overwrite existing targets")
	return cmd
}
