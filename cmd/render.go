package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/fresco/internal/observability"
	"github.com/xkilldash9x/fresco/internal/render"
)

// newRenderCmd creates and configures the `render` command.
func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Renders an HTML document with a CSS stylesheet to a PNG image",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags so they override config-file and env values.
			if err := viper.BindPFlag("render.viewport_width", cmd.Flags().Lookup("width")); err != nil {
				return err
			}
			return viper.BindPFlag("render.viewport_height", cmd.Flags().Lookup("height"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			inputPath, _ := cmd.Flags().GetString("input")
			cssPath, _ := cmd.Flags().GetString("css")
			outputPath, _ := cmd.Flags().GetString("output")
			dumpDisplayList, _ := cmd.Flags().GetBool("dump-display-list")

			htmlSrc, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading HTML input: %w", err)
			}
			cssSrc, err := os.ReadFile(cssPath)
			if err != nil {
				return fmt.Errorf("reading stylesheet: %w", err)
			}

			opts := render.Options{
				ViewportWidth:  viper.GetInt("render.viewport_width"),
				ViewportHeight: viper.GetInt("render.viewport_height"),
			}
			logger.Info("Rendering document",
				zap.String("input", inputPath),
				zap.String("css", cssPath),
				zap.Int("width", opts.ViewportWidth),
				zap.Int("height", opts.ViewportHeight),
			)

			result, err := render.NewPipeline(logger).Render(string(htmlSrc), string(cssSrc), opts)
			if err != nil {
				return err
			}

			if dumpDisplayList {
				if err := result.DisplayList.EncodeJSON(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("encoding display list: %w", err)
				}
			}

			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer out.Close()

			if err := result.Canvas.EncodePNG(out); err != nil {
				return fmt.Errorf("encoding PNG: %w", err)
			}
			logger.Info("Wrote image",
				zap.String("output", outputPath),
				zap.Int("commands", len(result.DisplayList)),
			)
			return nil
		},
	}

	renderCmd.Flags().StringP("input", "i", "", "path to the HTML document (required)")
	renderCmd.Flags().String("css", "", "path to the CSS stylesheet (required)")
	renderCmd.Flags().StringP("output", "o", "output.png", "path of the PNG image to write")
	renderCmd.Flags().Int("width", 800, "viewport width in pixels")
	renderCmd.Flags().Int("height", 600, "viewport height in pixels")
	renderCmd.Flags().Bool("dump-display-list", false, "print the display list as JSON before painting")
	_ = renderCmd.MarkFlagRequired("input")
	_ = renderCmd.MarkFlagRequired("css")

	return renderCmd
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
}
