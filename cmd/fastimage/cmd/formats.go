package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastimage/go-fastimage/codec"
	"github.com/fastimage/go-fastimage/raster/kernels"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported container formats and resampling filters",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("formats:")
		for f := codec.FormatPNG; f <= codec.FormatTIFF; f++ {
			fmt.Printf("  %s\n", f)
		}
		fmt.Println("filters:")
		for _, f := range []kernels.Filter{
			kernels.Nearest,
			kernels.Triangle,
			kernels.CatmullRom,
			kernels.Gaussian,
			kernels.Lanczos3,
		} {
			fmt.Printf("  %s\n", f)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
