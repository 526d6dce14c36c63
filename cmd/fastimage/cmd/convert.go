package cmd

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fastimage/go-fastimage/codec"
	"github.com/fastimage/go-fastimage/engine"
	"github.com/fastimage/go-fastimage/raster/kernels"
	"github.com/fastimage/go-fastimage/util"
)

var convertOpts struct {
	resize     string
	exact      string
	fill       string
	filter     string
	rotate     int
	flip       string
	blur       float64
	brightness int
	contrast   float64
	grayscale  bool
	invert     bool
	quality    int
}

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Decode an image, apply transforms, and write it in the format of DST",
	Long: `Convert decodes SRC, applies the requested transforms in a fixed order
(resize, rotate, flip, blur, brightness, contrast, grayscale, invert), and
encodes the result into the format implied by DST's extension.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertOpts.resize, "resize", "", "fit within WxH, preserving aspect ratio")
	convertCmd.Flags().StringVar(&convertOpts.exact, "exact", "", "resize to exactly WxH")
	convertCmd.Flags().StringVar(&convertOpts.fill, "fill", "", "cover WxH and center-crop the overflow")
	convertCmd.Flags().StringVar(&convertOpts.filter, "filter", "lanczos3", "resampling filter (nearest, triangle, catmullrom, gaussian, lanczos3)")
	convertCmd.Flags().IntVar(&convertOpts.rotate, "rotate", 0, "rotate clockwise by 90, 180, or 270 degrees")
	convertCmd.Flags().StringVar(&convertOpts.flip, "flip", "", "mirror the image (horizontal, vertical)")
	convertCmd.Flags().Float64Var(&convertOpts.blur, "blur", 0, "Gaussian blur sigma")
	convertCmd.Flags().IntVar(&convertOpts.brightness, "brightness", 0, "brightness shift added to every color sample")
	convertCmd.Flags().Float64Var(&convertOpts.contrast, "contrast", 1, "contrast factor around the midpoint")
	convertCmd.Flags().BoolVar(&convertOpts.grayscale, "grayscale", false, "reduce to perceived luminance")
	convertCmd.Flags().BoolVar(&convertOpts.invert, "invert", false, "invert every color sample")
	convertCmd.Flags().IntVar(&convertOpts.quality, "quality", 0, "JPEG/WebP quality 1-100, 0 for the default")
}

// step is one handle-to-handle stage of the convert pipeline.
type step struct {
	name string
	run  func(engine.Handle) (engine.Handle, engine.Code)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	outFormat := codec.FormatFromPath(dst)
	if outFormat == codec.FormatUnknown {
		return errors.Errorf("cannot infer an output format from %q", dst)
	}

	eng := newEngine()
	steps, err := buildSteps(eng)
	if err != nil {
		return err
	}

	h, code := eng.Load(src)
	if code != engine.Success {
		return codeErr(src, code)
	}

	for _, s := range steps {
		next, code := s.run(h)
		if code != engine.Success {
			return codeErr(s.name, code)
		}
		// In-place stages hand back the same handle; only retire replaced ones.
		if next != h {
			eng.Free(h)
			h = next
		}
		slog.Debug("applied transform", "step", s.name)
	}

	opts := codec.EncodeOptions{}
	if convertOpts.quality > 0 {
		opts.JPEGQuality = convertOpts.quality
		opts.WebPQuality = float32(convertOpts.quality)
	}
	buf, code := eng.Encode(h, outFormat, opts)
	if code != engine.Success {
		return codeErr("encode", code)
	}
	data, code := eng.BufferBytes(buf)
	if code != engine.Success {
		return codeErr("encode", code)
	}
	if err := util.WriteFileAtomic(dst, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", dst)
	}
	eng.FreeBuffer(buf)
	eng.Free(h)

	slog.Info("converted", "src", src, "dst", dst, "format", outFormat.String(), "bytes", len(data))
	return nil
}

// buildSteps translates the convert flags into pipeline stages, validating
// flag values up front so failures happen before any decoding work.
func buildSteps(eng *engine.Engine) ([]step, error) {
	var steps []step

	modes := 0
	for _, dims := range []string{convertOpts.resize, convertOpts.exact, convertOpts.fill} {
		if dims != "" {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.New("--resize, --exact, and --fill are mutually exclusive")
	}

	filter, err := kernels.ParseFilter(convertOpts.filter)
	if err != nil {
		return nil, err
	}

	switch {
	case convertOpts.resize != "":
		w, h, err := parseDims(convertOpts.resize)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{"resize", func(src engine.Handle) (engine.Handle, engine.Code) {
			return eng.Resize(src, w, h, filter)
		}})
	case convertOpts.exact != "":
		w, h, err := parseDims(convertOpts.exact)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{"exact resize", func(src engine.Handle) (engine.Handle, engine.Code) {
			return eng.ResizeExact(src, w, h, filter)
		}})
	case convertOpts.fill != "":
		w, h, err := parseDims(convertOpts.fill)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{"fill resize", func(src engine.Handle) (engine.Handle, engine.Code) {
			return eng.ResizeToFill(src, w, h, filter)
		}})
	}

	switch convertOpts.rotate {
	case 0:
	case 90:
		steps = append(steps, step{"rotate 90", eng.Rotate90})
	case 180:
		steps = append(steps, step{"rotate 180", eng.Rotate180})
	case 270:
		steps = append(steps, step{"rotate 270", eng.Rotate270})
	default:
		return nil, errors.Errorf("--rotate accepts 90, 180, or 270, not %d", convertOpts.rotate)
	}

	switch convertOpts.flip {
	case "":
	case "horizontal":
		steps = append(steps, step{"horizontal flip", eng.FlipHorizontal})
	case "vertical":
		steps = append(steps, step{"vertical flip", eng.FlipVertical})
	default:
		return nil, errors.Errorf("--flip accepts horizontal or vertical, not %q", convertOpts.flip)
	}

	if convertOpts.blur > 0 {
		sigma := float32(convertOpts.blur)
		steps = append(steps, step{"blur", func(src engine.Handle) (engine.Handle, engine.Code) {
			return eng.Blur(src, sigma)
		}})
	}
	if convertOpts.brightness != 0 {
		delta := int32(convertOpts.brightness)
		steps = append(steps, step{"brightness", func(src engine.Handle) (engine.Handle, engine.Code) {
			return eng.Brightness(src, delta)
		}})
	}
	if convertOpts.contrast != 1 {
		factor := float32(convertOpts.contrast)
		steps = append(steps, step{"contrast", func(src engine.Handle) (engine.Handle, engine.Code) {
			return eng.Contrast(src, factor)
		}})
	}
	if convertOpts.grayscale {
		steps = append(steps, step{"grayscale", eng.Grayscale})
	}
	if convertOpts.invert {
		steps = append(steps, step{"invert", func(src engine.Handle) (engine.Handle, engine.Code) {
			return src, eng.Invert(src)
		}})
	}

	return steps, nil
}

// parseDims parses a "WxH" flag value into positive dimensions.
func parseDims(s string) (uint32, uint32, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, errors.Errorf("dimensions must look like 640x480, got %q", s)
	}
	width, err := strconv.ParseUint(w, 10, 32)
	if err != nil || width == 0 {
		return 0, 0, errors.Errorf("invalid width in %q", s)
	}
	height, err := strconv.ParseUint(h, 10, 32)
	if err != nil || height == 0 {
		return 0, 0, errors.Errorf("invalid height in %q", s)
	}
	return uint32(width), uint32(height), nil
}
