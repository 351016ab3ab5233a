package cmd

import (
	"os"

	"emperror.dev/errors"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "prints the effective checklist profile as toml",
	Example: "droidcheck profile > myapp.toml",
	Args:    cobra.NoArgs,
	RunE:    showProfile,
}

func initProfile() {
	profileCmd.Flags().StringP("profile", "p", "", "checklist profile (.toml, .yaml or .json), default is built in")
}

func showProfile(cmd *cobra.Command, args []string) error {
	if str := getFlagString(cmd, "profile"); str != "" {
		conf.Validate.Profile = str
	}
	cmd.SilenceUsage = true
	profile, err := loadProfile(conf.Validate.Profile)
	if err != nil {
		return errors.Wrap(err, "cannot load profile")
	}
	return errors.WithStack(profile.Encode(os.Stdout))
}
