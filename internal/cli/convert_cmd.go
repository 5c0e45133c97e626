package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/haytac/emotions/internal/emotion"
	"github.com/haytac/emotions/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// readInput joins args with spaces, or reads stdin when there are none.
// A single trailing newline from stdin is dropped.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

func runConversion(cmd *cobra.Command, args []string, op string, fn func(string) string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out := fn(text)
	metrics.Conversions.WithLabelValues(op).Inc()
	log.Debug().Str("op", op).Int("in_bytes", len(text)).Int("out_bytes", len(out)).Msg("Converted text")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func newUnicodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unicode [text...]",
		Short: "Replace :alias: emoji with Unicode glyphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadedConfig()
			if err != nil {
				return err
			}
			return runConversion(cmd, args, "unicode", newTranslator(cfg.Tone).ToUnicode)
		},
	}
}

func newAliasesCmd() *cobra.Command {
	var tone string
	cmd := &cobra.Command{
		Use:   "aliases [text...]",
		Short: "Replace Unicode emoji with their :alias:",
		Long: `Replace every Unicode emoji with its canonical :alias:. Skin-tone modifiers
are removed, kept as a |type_N suffix (parse) or left after the alias (ignore).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadedConfig()
			if err != nil {
				return err
			}
			action := cfg.Tone
			if cmd.Flags().Changed("tone") {
				if action, err = emotion.ParseToneAction(tone); err != nil {
					return err
				}
			}
			return runConversion(cmd, args, "aliases", newTranslator(action).ToAliases)
		},
	}
	cmd.Flags().StringVar(&tone, "tone", "", "skin-tone policy: remove, parse or ignore (default from config)")
	return cmd
}

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip [text...]",
		Short: "Remove [emNN] tokens and catalog :alias: emoji",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversion(cmd, args, "strip", emotion.Strip)
		},
	}
}

func newRenderCmd() *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render catalog :alias: emoji as HTML image tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadedConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("base-url") {
				baseURL = cfg.StaticServePath
			}
			tr := newTranslator(cfg.Tone)
			return runConversion(cmd, args, "render", func(s string) string {
				return tr.Render(s, strings.TrimSuffix(baseURL, "/"))
			})
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "asset base URL (default static_serve_path from config)")
	return cmd
}
