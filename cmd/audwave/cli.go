// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/internal/config"
	"github.com/ik5/audwave/peaks"
	"github.com/ik5/audwave/waveform"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errOutputWithManyInputs = errors.New("--output needs exactly one input file")

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "audwave",
		Short:         "Render waveform images and peak data from audio files",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"YAML configuration file (default "+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"Log progress and timings to stderr")

	rootCmd.AddCommand(
		newWaveformCmd(flags),
		newDataCmd(flags),
		newConvertCmd(flags),
	)

	return rootCmd
}

// load reads the configuration and applies the source flags every file
// command shares.
func (f *rootFlags) load(cmd *cobra.Command, src *sourceFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if src != nil {
		src.apply(cmd.Flags(), cfg)
	}
	return cfg, nil
}

func (f *rootFlags) logger(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if cfg.Verbose {
		return cmd.ErrOrStderr()
	}
	return nil
}

// sourceFlags are the staging options of the file commands.
type sourceFlags struct {
	output       string
	setExtension string
	convertTo    string
}

func (s *sourceFlags) register(fs *pflag.FlagSet, outputHelp string) {
	fs.StringVarP(&s.output, "output", "o", "", outputHelp)
	fs.StringVar(&s.setExtension, "set-extension", "",
		"Rename the input to this extension while it is read")
	fs.StringVar(&s.convertTo, "convert-to", "",
		"Transcode the input to this type first (only wav)")
}

func (s *sourceFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("set-extension") {
		cfg.Source.SetExtension = s.setExtension
	}
	if fs.Changed("convert-to") {
		cfg.Source.ConvertTo = s.convertTo
	}
}

func (s *sourceFlags) staging(cfg *config.Config, log io.Writer) audwave.Staging {
	return audwave.Staging{
		Filename:     s.output,
		SetExtension: cfg.Source.SetExtension,
		ConvertTo:    cfg.Source.ConvertTo,
		Logger:       log,
	}
}

func newWaveformCmd(root *rootFlags) *cobra.Command {
	var (
		src      sourceFlags
		opts     = waveform.DefaultConfig()
		method   string
		defaults = waveform.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "waveform <file>...",
		Short: "Render a PNG waveform next to each input file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if src.output != "" && len(args) > 1 {
				return errOutputWithManyInputs
			}

			cfg, err := root.load(cmd, &src)
			if err != nil {
				return err
			}
			applyWaveformFlags(cmd.Flags(), &cfg.Waveform, opts, method)

			for _, source := range args {
				out, err := audwave.Generate(source, audwave.Options{
					Config:  cfg.Waveform,
					Staging: src.staging(cfg, root.logger(cmd, cfg)),
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	src.register(fs, "Output PNG file (default <input>.png)")
	fs.StringVarP(&method, "method", "m", string(defaults.Method), "Aggregation method: peak or rms")
	fs.IntVarP(&opts.Width, "width", "W", waveform.DefaultWidth, "Image width in pixels")
	fs.IntVarP(&opts.Height, "height", "H", defaults.Height, "Image height in pixels")
	fs.Float64Var(&opts.AutoWidth, "auto-width", 0, "Pixels per second of audio; overrides the default width")
	fs.IntVar(&opts.SampleWidth, "sample-width", defaults.SampleWidth, "Bar width in pixels")
	fs.IntVar(&opts.GapWidth, "gap-width", defaults.GapWidth, "Gap between bars in pixels")
	fs.StringVarP(&opts.Color, "color", "c", defaults.Color, "Bar color (#rrggbb, #rgb or transparent)")
	fs.StringVarP(&opts.BackgroundColor, "background-color", "b", defaults.BackgroundColor,
		"Background color (#rrggbb, #rgb or transparent)")

	return cmd
}

// applyWaveformFlags copies the flags set on the command line over cfg.
func applyWaveformFlags(fs *pflag.FlagSet, cfg *waveform.Config, flags waveform.Config, method string) {
	if fs.Changed("method") {
		cfg.Method = waveform.Method(method)
	}
	if fs.Changed("width") {
		cfg.Width = flags.Width
	}
	if fs.Changed("height") {
		cfg.Height = flags.Height
	}
	if fs.Changed("auto-width") {
		cfg.AutoWidth = flags.AutoWidth
	}
	if fs.Changed("sample-width") {
		cfg.SampleWidth = flags.SampleWidth
	}
	if fs.Changed("gap-width") {
		cfg.GapWidth = flags.GapWidth
	}
	if fs.Changed("color") {
		cfg.Color = flags.Color
	}
	if fs.Changed("background-color") {
		cfg.BackgroundColor = flags.BackgroundColor
	}
}

func newDataCmd(root *rootFlags) *cobra.Command {
	var (
		src  sourceFlags
		opts = peaks.DefaultOptions()
		tool string
	)

	cmd := &cobra.Command{
		Use:   "data <file>...",
		Short: "Write audiowaveform JSON peak data next to each input file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if src.output != "" && len(args) > 1 {
				return errOutputWithManyInputs
			}

			cfg, err := root.load(cmd, &src)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("pixels-per-second") {
				cfg.Data.PixelsPerSecond = opts.PixelsPerSecond
			}
			if fs.Changed("bits") {
				cfg.Data.Bits = opts.Bits
			}
			if fs.Changed("tool") {
				cfg.Data.Tool = tool
			}

			log := root.logger(cmd, cfg)
			dataOpts := audwave.DataOptions{
				Options: cfg.Data.Options,
				Staging: src.staging(cfg, log),
			}
			if cfg.Data.Tool != "" {
				dataOpts.Tool = &peaks.Tool{Command: cfg.Data.Tool, Warnings: log}
			}

			for _, source := range args {
				out, err := audwave.GenerateData(cmd.Context(), source, dataOpts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	src.register(fs, "Output JSON file (default <input>.json)")
	fs.IntVarP(&opts.PixelsPerSecond, "pixels-per-second", "p", peaks.DefaultPixelsPerSecond,
		"Peak pairs per second of audio")
	fs.IntVarP(&opts.Bits, "bits", "b", peaks.DefaultBits, "Peak resolution: 8 or 16 bits")
	fs.StringVar(&tool, "tool", "",
		"Run this audiowaveform binary instead of computing peaks natively")

	return cmd
}

func newConvertCmd(root *rootFlags) *cobra.Command {
	var opts audwave.ConvertOptions

	cmd := &cobra.Command{
		Use:   "convert <input> <output.wav>",
		Short: "Decode any supported file into 16-bit PCM WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd, nil)
			if err != nil {
				return err
			}
			if log := root.logger(cmd, cfg); log != nil {
				fmt.Fprintf(log, "Converting %s to %s\n", args[0], args[1])
			}

			if err := audwave.ConvertToWAV(args[0], args[1], opts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), args[1])
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.SampleRate, "rate", "r", 0, "Resample to this rate in Hz (default keeps the source rate)")
	cmd.Flags().BoolVar(&opts.Mono, "mono", false, "Mix all channels down to one")

	return cmd
}
