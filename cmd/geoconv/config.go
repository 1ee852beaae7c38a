package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/tzneal/geotrans"
	"gopkg.in/yaml.v3"
)

// ConfigData holds the frames read from a frames file.
type ConfigData struct {
	// Frames are the named reference systems, keyed by lower case name.
	Frames map[string]Frame `toml:"frames" yaml:"frames"`
}

// Frame describes a coordinate reference system with explicit parameters.
type Frame struct {
	// Ellipsoid holds the ellipsoid parameters a, b, f, rf, code and name.
	// Empty means WGS84. It is used for the datum unless the datum names its
	// own ellipsoid.
	Ellipsoid map[string]interface{} `toml:"ellipsoid" yaml:"ellipsoid"`

	// Datum holds the datum parameters: dx, dy, dz, rx, ry, rz, m (or
	// towgs84), code and name. Empty means the WGS84 identity datum.
	Datum map[string]interface{} `toml:"datum" yaml:"datum"`

	// Projection is one of latlon, longlat, cea, tmerc or utm. Empty means
	// latlon.
	Projection string `toml:"projection" yaml:"projection"`

	// Params holds the projection parameters.
	Params map[string]interface{} `toml:"params" yaml:"params"`
}

var builtinFrames = map[string]Frame{
	"wgs84": {Projection: "latlon"},
	"utm":   {Projection: "utm"},
}

// ReadConfigFile reads a TOML (.toml) or YAML (.yaml, .yml) frames file. The
// built-in frames are included unless the file redefines them. An empty
// filename gives only the built-in frames.
func ReadConfigFile(filename string) (*ConfigData, error) {
	if filename == "" {
		return parseConfig("", nil)
	}
	filename = os.ExpandEnv(filename)
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "the configuration file you have specified, %v, could not be read", filename)
	}
	return parseConfig(filepath.Ext(filename), bytes)
}

func parseConfig(ext string, data []byte) (*ConfigData, error) {
	var file ConfigData
	switch strings.ToLower(ext) {
	case "":
	case ".toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, errors.Wrap(err, "there has been an error parsing the configuration file")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(err, "there has been an error parsing the configuration file")
		}
	default:
		return nil, errors.Newf("configuration file type %q is not supported; use .toml, .yaml or .yml", ext)
	}

	config := &ConfigData{Frames: make(map[string]Frame, len(builtinFrames)+len(file.Frames))}
	for name, f := range builtinFrames {
		config.Frames[name] = f
	}
	for name, f := range file.Frames {
		config.Frames[strings.ToLower(name)] = f
	}
	return config, nil
}

// Names returns the frame names, sorted.
func (c *ConfigData) Names() []string {
	names := make([]string, 0, len(c.Frames))
	for name := range c.Frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CRS builds the reference system for the named frame.
func (c *ConfigData) CRS(name string) (geotrans.CRS, error) {
	f, ok := c.Frames[strings.ToLower(name)]
	if !ok {
		return geotrans.CRS{}, errors.Newf("frame %q is not defined; defined frames are %s", name, strings.Join(c.Names(), ", "))
	}
	crs, err := f.CRS()
	if err != nil {
		return geotrans.CRS{}, errors.Wrapf(err, "frame %q", name)
	}
	return crs, nil
}

// CRS builds the reference system the frame describes.
// The frame's ellipsoid is given to the datum unless the datum names its own;
// a frame with neither is on the WGS84 datum.
func (f Frame) CRS() (geotrans.CRS, error) {
	dp := geotrans.Params{}
	hasEllps := false
	for k, v := range f.Datum {
		dp[k] = v
		switch strings.ToLower(k) {
		case "ellps", "ellipsoid":
			hasEllps = true
		}
	}
	if !hasEllps && len(f.Ellipsoid) > 0 {
		ellps, err := geotrans.NewEllipsoid(geotrans.Params(f.Ellipsoid))
		if err != nil {
			return geotrans.CRS{}, err
		}
		dp["ellps"] = ellps
	}
	d, err := geotrans.NewDatum(dp)
	if err != nil {
		return geotrans.CRS{}, err
	}

	kind := f.Projection
	if kind == "" {
		kind = "latlon"
	}
	proj, err := geotrans.NewProjection(kind, geotrans.Params(f.Params))
	if err != nil {
		return geotrans.CRS{}, err
	}
	return geotrans.CRS{Datum: d, Projection: proj}, nil
}
