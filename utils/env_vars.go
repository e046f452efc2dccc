package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type envVarType interface {
	string | int | bool | float64
}

func parseEnvVar[T envVarType](envVarName, envValue string) (T, error) {
	var value T
	var err error
	switch p := any(&value).(type) {
	case *string:
		*p = envValue
	case *int:
		*p, err = strconv.Atoi(envValue)
	case *bool:
		*p, err = strconv.ParseBool(envValue)
	case *float64:
		*p, err = strconv.ParseFloat(envValue, 64)
	}
	if err != nil {
		return value, fmt.Errorf("environment variable %s is not valid: '%s' cannot be converted to %T", envVarName, envValue, value)
	}
	return value, nil
}

// GetEnv reads an environment variable and converts it to the type of the default value.
// It panics if the value is set but cannot be converted.
func GetEnv[T envVarType](envVarName string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	value, err := parseEnvVar[T](envVarName, envValue)
	if err != nil {
		panic(err)
	}
	return value
}

// GetEnvList reads a comma separated list, trimming items and dropping empty ones.
func GetEnvList(envVarName string, defaultValue []string) []string {
	envValue := GetEnv(envVarName, "")
	if envValue == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(envValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
