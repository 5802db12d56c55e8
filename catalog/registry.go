package catalog

import (
	"regexp"

	"github.com/appdeploykit/compat-framework/compat"
)

// registryKeyRe accepts the hive prefixes the toolkit historically allowed.
var registryKeyRe = regexp.MustCompile(`^(HKLM|HKCU|HKCR|HKU|HKCC|HKEY_[A-Z_]+|Registry::)`)

func registryOperations() []*compat.Operation {
	return []*compat.Operation{
		compat.NewOperation("Set-RegistryKey",
			compat.NewDefinition("Set-ADTRegistryKey", "4.0.0", "Creates or updates a registry key or value"),
			[]string{"Key", "Name", "Value", "Type", "Wow6432Node", "SID"},
			[]compat.Step{
				compat.RequirePattern("Key", registryKeyRe),
			},
			compat.WithContinueOnError("ContinueOnError", true),
		),

		compat.NewOperation("Remove-RegistryKey",
			compat.NewDefinition("Remove-ADTRegistryKey", "4.0.0", "Removes a registry key or value"),
			[]string{"Key", "Name", "Recurse", "SID"},
			[]compat.Step{
				compat.RequirePattern("Key", registryKeyRe),
			},
			compat.WithContinueOnError("ContinueOnError", true),
		),
	}
}
