package cmd

import (
	"io"
	"os"

	"emperror.dev/errors"
	"github.com/google/uuid"
	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/shieldtechhub/droidcheck/pkg/checklist"
	"github.com/shieldtechhub/droidcheck/pkg/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:     "validate [path to android project]",
	Aliases: []string{"check"},
	Short:   "validates an android project before building it",
	Long: `Runs the structure, manifest, source file, resource and dependency checks
of a profile against a project folder or a zip archive of it.
Exits with 1 if any error was found.`,
	Example: "droidcheck validate ./shieldkids\ndroidcheck validate --format markdown project.zip/shieldkids",
	Args:    cobra.MaximumNArgs(1),
	RunE:    validate,
}

func initValidate() {
	validateCmd.Flags().StringP("profile", "p", "", "checklist profile (.toml, .yaml or .json), default is built in")
	validateCmd.Flags().StringP("format", "f", "", "report format (text|markdown|template)")
	validateCmd.Flags().String("template", "", "template file for report format 'template'")
	validateCmd.Flags().Int("info-limit", 10, "number of successful checks to list, 0 lists all")
}

func doValidateConf(cmd *cobra.Command) error {
	if str := getFlagString(cmd, "profile"); str != "" {
		conf.Validate.Profile = str
	}
	if str := getFlagString(cmd, "format"); str != "" {
		conf.Report.Format = str
	}
	if str := getFlagString(cmd, "template"); str != "" {
		conf.Report.Template = str
		if getFlagString(cmd, "format") == "" {
			conf.Report.Format = report.FormatTemplate
		}
	}
	if cmd.Flags().Changed("info-limit") {
		conf.Report.InfoLimit = getFlagInt(cmd, "info-limit")
	}
	return errors.WithStack(conf.Check())
}

func validate(cmd *cobra.Command, args []string) error {
	projectRoot := "."
	if len(args) > 0 {
		projectRoot = args[0]
	}
	if err := doValidateConf(cmd); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	runID := uuid.NewString()
	logger, closeLogger := createLogger(runID)
	defer closeLogger()

	ok, err := runValidation(projectRoot, runID, os.Stdout, logger)
	if err != nil {
		logger.Error().Stack().Err(err).Msgf("cannot validate '%s'", projectRoot)
		return err
	}
	if !ok {
		return errValidationFailed
	}
	return nil
}

// runValidation checks the project at projectRoot and writes the report to
// out. The result is true iff no error was found.
func runValidation(projectRoot, runID string, out io.Writer, logger zLogger.ZLogger) (bool, error) {
	t := startTimer()
	defer func() { logger.Info().Msgf("Duration: %s", t.String()) }()

	logger.Info().Msgf("validating '%s'", projectRoot)

	profile, err := loadProfile(conf.Validate.Profile)
	if err != nil {
		return false, errors.Wrap(err, "cannot load profile")
	}
	renderer, err := report.NewRenderer(conf.Report.Format, conf.Report.Template)
	if err != nil {
		return false, errors.Wrap(err, "cannot create report renderer")
	}

	fsFactory, err := initializeFSFactory(logger)
	if err != nil {
		return false, errors.Wrap(err, "cannot create filesystem factory")
	}
	projectFS, closer, err := fsFactory.Get(projectRoot)
	if err != nil {
		return false, errors.Wrapf(err, "cannot get filesystem for '%s'", projectRoot)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error().Stack().Err(err).Msgf("cannot close filesystem '%s'", projectRoot)
		}
	}()

	validator, err := checklist.NewValidator(projectFS, profile, logger)
	if err != nil {
		return false, errors.Wrap(err, "cannot create validator")
	}

	if conf.Report.Format == report.FormatText {
		if err := report.Header(out, profile.Title); err != nil {
			return false, errors.Wrap(err, "cannot write report header")
		}
	}
	status := validator.Check()

	summary := &report.Summary{
		Title:     profile.Title,
		Root:      projectRoot,
		RunID:     runID,
		Status:    status,
		InfoLimit: conf.Report.InfoLimit,
		Duration:  t.Duration(),
		BytesRead: validator.BytesRead(),
	}
	if err := renderer.Render(out, summary); err != nil {
		return false, errors.Wrap(err, "cannot render report")
	}
	if !status.OK() {
		logger.Error().Msgf("%d errors found in '%s'", len(status.Errors), projectRoot)
	} else {
		logger.Info().Msgf("no errors found in '%s'", projectRoot)
	}
	return status.OK(), nil
}
