package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb/geojson"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tzneal/geotrans"
)

var (
	fromFrame string
	toFrame   string
	asGeoJSON bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [coordinate parts...]",
	Short: "Convert coordinates from one frame to another",
	Long: `convert reads one coordinate per line from standard input, or a single
coordinate from its arguments, and writes it converted to the target frame.
The parts of a coordinate are separated by spaces or commas and follow the
order of the source projection: lat lon [height] for latlon, x y for cea and
tmerc, x y [zone [south]] for utm. Blank lines and lines starting with # are
skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := Config.CRS(fromFrame)
		if err != nil {
			return err
		}
		to, err := Config.CRS(toFrame)
		if err != nil {
			return err
		}
		in := cmd.InOrStdin()
		if len(args) > 0 {
			in = strings.NewReader(strings.Join(args, " "))
		}
		return Convert(in, cmd.OutOrStdout(), from, to, asGeoJSON)
	},
}

func init() {
	convertCmd.Flags().StringVar(&fromFrame, "from", "wgs84", "source frame")
	convertCmd.Flags().StringVar(&toFrame, "to", "wgs84", "target frame")
	convertCmd.Flags().BoolVar(&asGeoJSON, "geojson", false, "write a GeoJSON FeatureCollection instead of text")
}

// Convert converts each coordinate read from in and writes the results to
// out, one per line or as a GeoJSON FeatureCollection. Conversion stops at
// the first coordinate that fails.
func Convert(in io.Reader, out io.Writer, from, to geotrans.CRS, asGeoJSON bool) error {
	fc := geojson.NewFeatureCollection()
	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		src, err := parseCoordinate(from, text)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		dst, err := geotrans.Transform(from, to, src)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		logger.WithFields(logger.Fields{
			"line": line,
			"from": src.Parts(),
			"to":   dst.Parts(),
		}).Debug("converted")

		if asGeoJSON {
			f := geojson.NewFeature(dst.OrbPoint())
			for k, v := range dst.Parts() {
				f.Properties[k] = v
			}
			fc.Append(f)
			continue
		}
		if _, err := fmt.Fprintln(w, formatCoordinate(dst)); err != nil {
			return errors.Wrap(err, "writing coordinates")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading coordinates")
	}

	if asGeoJSON {
		b, err := fc.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", b); err != nil {
			return errors.Wrap(err, "writing feature collection")
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "writing coordinates")
	}
	return nil
}

func parseCoordinate(crs geotrans.CRS, text string) (geotrans.ProjectedPoint, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	names := crs.Projection.CoordinateNames()
	if len(fields) < 2 || len(fields) > len(names) {
		return geotrans.ProjectedPoint{}, errors.Newf("%d coordinate parts given; %s expects 2 to %d (%s)",
			len(fields), crs.Projection.Name(), len(names), strings.Join(names, " "))
	}
	coords := geotrans.Params{}
	for i, f := range fields {
		coords[names[i]] = f
	}
	return crs.Point(coords)
}

func formatCoordinate(p geotrans.ProjectedPoint) string {
	var parts []string
	for _, name := range p.Projection().CoordinateNames() {
		if !p.Has(name) {
			continue
		}
		v, _ := p.Get(name)
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}
