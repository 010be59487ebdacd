package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const EnvironmentVariablePrefix = "TOKENAUTH_"

// SetFlagsFromEnvVariables overrides each flag with an env variable whose
// name starts with `TOKENAUTH_`.
func SetFlagsFromEnvVariables(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		envVar := flagToEnvVarName(f)
		if val, present := os.LookupEnv(envVar); present {
			fs.Set(f.Name, val)
		}
	})
}

func flagToEnvVarName(f *pflag.Flag) string {
	return fmt.Sprintf("%s%s", EnvironmentVariablePrefix, strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_"))
}
