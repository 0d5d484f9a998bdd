package cmd

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/fresco/internal/dom"
	"github.com/xkilldash9x/fresco/internal/layout"
	"github.com/xkilldash9x/fresco/internal/observability"
	"github.com/xkilldash9x/fresco/internal/render"
	"github.com/xkilldash9x/fresco/internal/style"
)

// boxReport is the geometry payload printed by the inspect command.
type boxReport struct {
	Selector   string      `json:"selector"`
	BoxKind    string      `json:"box_kind"`
	ContentBox layout.Rect `json:"content_box"`
	PaddingBox layout.Rect `json:"padding_box"`
	BorderBox  layout.Rect `json:"border_box"`
	MarginBox  layout.Rect `json:"margin_box"`
}

// newInspectCmd creates and configures the `inspect` command, which lays
// out a document and reports the computed geometry of one element.
func newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Reports the laid-out box geometry of an element selected by XPath",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			inputPath, _ := cmd.Flags().GetString("input")
			cssPath, _ := cmd.Flags().GetString("css")
			selector, _ := cmd.Flags().GetString("selector")

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
			result, err := render.NewPipeline(logger).Render(string(htmlSrc), string(cssSrc), opts)
			if err != nil {
				return err
			}

			rootStyled, err := result.LayoutRoot.StyleNode()
			if err != nil {
				return err
			}
			target, err := dom.Query(rootStyled.Node, selector)
			if err != nil {
				return err
			}

			box := result.LayoutRoot.FindByNode(func(sn *style.StyledNode) bool {
				return sn.Node == target
			})
			if box == nil {
				return fmt.Errorf("element %q generated no box (display: none?)", selector)
			}
			logger.Debug("Resolved element geometry", zap.String("selector", selector))

			report := boxReport{
				Selector:   selector,
				BoxKind:    box.Kind.String(),
				ContentBox: box.Dimensions.Content,
				PaddingBox: box.Dimensions.PaddingBox(),
				BorderBox:  box.Dimensions.BorderBox(),
				MarginBox:  box.Dimensions.MarginBox(),
			}
			enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	inspectCmd.Flags().StringP("input", "i", "", "path to the HTML document (required)")
	inspectCmd.Flags().String("css", "", "path to the CSS stylesheet (required)")
	inspectCmd.Flags().StringP("selector", "s", "", "XPath selector of the element to inspect (required)")
	_ = inspectCmd.MarkFlagRequired("input")
	_ = inspectCmd.MarkFlagRequired("css")
	_ = inspectCmd.MarkFlagRequired("selector")

	return inspectCmd
}

func init() {
	rootCmd.AddCommand(newInspectCmd())
}
