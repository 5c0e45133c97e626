package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/haytac/emotions/internal/config"
	"github.com/haytac/emotions/internal/emotion"
	"github.com/haytac/emotions/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errNotKnown makes `known` exit non-zero without printing an error.
var errNotKnown = errors.New("not a catalog emoji")

var (
	cfgFile string
	AppCfg  *config.AppConfig // populated in PersistentPreRunE
)

// NewRootCmd builds the emotions command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "emotions",
		Short: "Convert emoji between aliases, Unicode and HTML image tags.",
		Long: `emotions rewrites emoji in text: :smile: aliases to Unicode glyphs and back,
strips forum emotion markup, and renders catalog emoji as <img> tags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadedCfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			AppCfg = loadedCfg

			logging.Setup(AppCfg.Log)
			if AppCfg.StaticServePath == "" {
				log.Debug().Msg("static_serve_path is empty, rendered image tags will use relative URLs")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml, $HOME/.emotions/config.yaml)")

	root.AddCommand(newUnicodeCmd())
	root.AddCommand(newAliasesCmd())
	root.AddCommand(newStripCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newKnownCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newServeCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errNotKnown) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newTranslator(tone emotion.ToneAction) *emotion.Translator {
	if tone == emotion.Default().Tone() {
		return emotion.Default()
	}
	return emotion.New(emotion.WithTone(tone))
}

func loadedConfig() (*config.AppConfig, error) {
	if AppCfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return AppCfg, nil
}
