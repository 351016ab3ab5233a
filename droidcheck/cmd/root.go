package cmd

import (
	"fmt"
	"os"

	"emperror.dev/emperror"
	"emperror.dev/errors"
	"github.com/shieldtechhub/droidcheck/config"
	"github.com/shieldtechhub/droidcheck/version"
	"github.com/spf13/cobra"
)

// all possible flags of all modules go here
var persistentFlagConfigFile string

var persistentFlagLogfile string
var persistentFlagLoglevel string

var conf *config.DroidCheckConfig

// errValidationFailed ends the process with exit code 1 without a message,
// the report already says what is wrong.
var errValidationFailed = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "droidcheck",
	Short: "droidcheck is a static pre-build checklist for android projects",
	Long: fmt.Sprintf(`Checks that an android project contains the expected files, manifest
entries, resources and gradle dependencies before it is built.
Version %s`, version.Version),
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		emperror.Panic(cmd.Help())
	},
}

func getFlagString(cmd *cobra.Command, flag string) string {
	str, err := cmd.Flags().GetString(flag)
	if err != nil {
		emperror.Panic(cmd.Help())
		cobra.CheckErr(errors.Errorf("cannot get flag %s: %v", flag, err))
	}
	return str
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	i, err := cmd.Flags().GetInt(flag)
	if err != nil {
		emperror.Panic(cmd.Help())
		cobra.CheckErr(errors.Errorf("cannot get flag %s: %v", flag, err))
	}
	return i
}

func initConfig() {
	// load config file
	var data = config.DefaultConfig
	if persistentFlagConfigFile != "" {
		var err error
		data, err = os.ReadFile(persistentFlagConfigFile)
		if err != nil {
			emperror.Panic(rootCmd.Help())
			cobra.CheckErr(errors.Wrapf(err, "error reading config file %s", persistentFlagConfigFile))
		}
	}
	var err error
	conf, err = config.LoadDroidCheckConfig(string(data))
	if err != nil {
		emperror.Panic(rootCmd.Help())
		cobra.CheckErr(errors.Wrapf(err, "error loading config file %s", persistentFlagConfigFile))
	}

	// overwrite config file with command line data
	if persistentFlagLogfile != "" {
		conf.Log.File = persistentFlagLogfile
	}
	if persistentFlagLoglevel != "" {
		conf.Log.Level = persistentFlagLoglevel
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&persistentFlagConfigFile, "config", "", "config file (default is built in)")
	rootCmd.PersistentFlags().StringVar(&persistentFlagLogfile, "log-file", "", "log output file (default is console)")
	rootCmd.PersistentFlags().StringVar(&persistentFlagLoglevel, "log-level", "", "log level (CRITICAL|ERROR|WARNING|NOTICE|INFO|DEBUG)")

	initValidate()
	initProfile()

	rootCmd.AddCommand(validateCmd, profileCmd, versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
