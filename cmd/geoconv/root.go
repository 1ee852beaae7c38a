package main

import (
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the geoconv release.
const Version = "0.3.0"

var (
	configFile string
	logLevel   string

	// Config holds the frames available to the commands.
	Config *ConfigData
)

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "geoconv",
	Short: "Convert coordinates between reference systems.",
	Long: `geoconv converts geodetic and projected coordinates between datums and
projections. Frames are read from a TOML or YAML file given with --config;
the frames wgs84 (WGS84 latitude/longitude) and utm (WGS84 UTM, zone chosen
per point) are always available.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Startup(configFile, logLevel, cmd.ErrOrStderr())
	},
}

// Startup configures logging and reads the frames file.
func Startup(configFile, logLevel string, logOut io.Writer) error {
	if err := setupLogging(logLevel, logOut); err != nil {
		return err
	}
	var err error
	Config, err = ReadConfigFile(configFile)
	if err != nil {
		return err
	}
	logger.WithFields(logger.Fields{
		"config": configFile,
		"frames": Config.Names(),
	}).Debug("configuration loaded")
	return nil
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(convertCmd)

	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "frames file location (.toml, .yaml or .yml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log level: debug, info, warning or error")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of geoconv",

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "geoconv v%s\n", Version)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}
