package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fastimage/go-fastimage/codec"
	"github.com/fastimage/go-fastimage/engine"
	"github.com/fastimage/go-fastimage/util"
)

var infoCmd = &cobra.Command{
	Use:   "info PATH...",
	Short: "Print the dimensions, channel layout, and container format of images",
	Long: `Print one line per image with its container format, pixel dimensions,
and channel layout. Directory arguments are expanded to the image files
they contain, matched by extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	eng := newEngine()

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}

	for _, path := range paths {
		data, err := util.ReadFileCapped(path, viper.GetInt64("limits.max_file_bytes"))
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}

		format, code := eng.GuessFormat(data)
		if code != engine.Success {
			return codeErr(path, code)
		}

		h, code := eng.LoadFromMemory(data)
		if code != engine.Success {
			return codeErr(path, code)
		}
		meta, code := eng.Metadata(h)
		if code != engine.Success {
			return codeErr(path, code)
		}
		eng.Free(h)

		fmt.Printf("%s: %s %dx%d %s\n", path, format, meta.Width, meta.Height, kindName(meta.ColorKind))
	}
	return nil
}

// expandArgs replaces directory arguments with the image files they
// contain, leaving plain file paths untouched.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", arg)
		}
		if !fi.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := util.ScanImageFiles(arg, func(name string) bool {
			return codec.FormatFromPath(name) != codec.FormatUnknown
		})
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", arg)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func kindName(kind uint8) string {
	switch kind {
	case engine.KindGray:
		return "gray"
	case engine.KindGrayAlpha:
		return "gray+alpha"
	case engine.KindRGB:
		return "rgb"
	}
	return "rgba"
}
