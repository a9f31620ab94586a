// Package config layers command flags over BIBYAML_* environment variables.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every flag name to form its environment variable.
const EnvPrefix = "BIBYAML"

// Bind returns settings for cmd. An explicitly set flag wins, then the
// environment (--thumbdir reads BIBYAML_THUMBDIR, --indent-mapping reads
// BIBYAML_INDENT_MAPPING), then the flag default.
func Bind(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}
