// Package flags is a helper package for processing command line flags
package flags

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// MustGetDefinedString attempts to get a non-empty string flag from the provided flag set or panic
func MustGetDefinedString(flagName string, flags *pflag.FlagSet) string {
	flagVal := MustGetString(flagName, flags)
	if flagVal == "" {
		panic(undefinedValueMessage(flagName))
	}
	return flagVal
}

// MustGetString attempts to get a string flag from the provided flag set or panic
func MustGetString(flagName string, flags *pflag.FlagSet) string {
	flagVal, err := flags.GetString(flagName)
	if err != nil {
		panic(notFoundMessage(flagName, err))
	}
	return flagVal
}

// MustGetStringSlice attempts to get a string slice flag from the provided flag set or panic
func MustGetStringSlice(flagName string, flags *pflag.FlagSet) []string {
	flagVal, err := flags.GetStringSlice(flagName)
	if err != nil {
		panic(notFoundMessage(flagName, err))
	}
	return flagVal
}

// MustGetStringToString attempts to get a string map flag from the provided flag set or panic
func MustGetStringToString(flagName string, flags *pflag.FlagSet) map[string]string {
	flagVal, err := flags.GetStringToString(flagName)
	if err != nil {
		panic(notFoundMessage(flagName, err))
	}
	return flagVal
}

// MustGetBool attempts to get a boolean flag from the provided flag set or panic
func MustGetBool(flagName string, flags *pflag.FlagSet) bool {
	flagVal, err := flags.GetBool(flagName)
	if err != nil {
		panic(notFoundMessage(flagName, err))
	}
	return flagVal
}

// MustGetInt32 attempts to get an int32 flag from the provided flag set or panic
func MustGetInt32(flagName string, flags *pflag.FlagSet) int32 {
	flagVal, err := flags.GetInt32(flagName)
	if err != nil {
		panic(notFoundMessage(flagName, err))
	}
	return flagVal
}

// MustGetDuration attempts to get a duration flag from the provided flag set or panic
func MustGetDuration(flagName string, flags *pflag.FlagSet) time.Duration {
	flagVal, err := flags.GetDuration(flagName)
	if err != nil {
		panic(notFoundMessage(flagName, err))
	}
	return flagVal
}

// MarkFlagRequired marks the given flag as required, panics if command has no flag with flagName
func MarkFlagRequired(flagName string, cmd *cobra.Command) {
	if err := cmd.MarkFlagRequired(flagName); err != nil {
		panic(err)
	}
}

func undefinedValueMessage(flagName string) string {
	return fmt.Sprintf("flag %s has undefined value", flagName)
}

func notFoundMessage(flagName string, err error) string {
	return fmt.Sprintf("could not get flag %s from flag set: %s", flagName, err.Error())
}
