package catalog

import (
	"regexp"

	"github.com/appdeploykit/compat-framework/compat"
)

// productCodeRe matches a braced MSI product GUID,
// e.g. "{23170F69-40C1-2702-1900-000001000000}".
var productCodeRe = regexp.MustCompile(`^\{[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}\}$`)

func processOperations() []*compat.Operation {
	return []*compat.Operation{
		compat.NewOperation("Execute-MSI",
			compat.NewDefinition("Start-ADTMsiProcess", "4.0.0", "Executes msiexec with the given package or product code"),
			[]string{
				"Action", "FilePath", "ProductCode", "Transforms", "ArgumentList",
				"AdditionalArgumentList", "SecureArgumentList", "Patches", "LogFileName",
				"WorkingDirectory", "SkipMSIAlreadyInstalledCheck", "IgnoreExitCodes",
				"NoWait", "PassThru",
			},
			[]compat.Step{
				// A GUID-form FilePath is really a product code; the path
				// parameter is dropped in its favor.
				compat.Custom("rewrite GUID FilePath into ProductCode", func(t *compat.Translation) error {
					v, ok := t.Bag.String("FilePath")
					if !ok || !productCodeRe.MatchString(v) {
						return nil
					}
					t.Bag = t.Bag.Without("FilePath").With("ProductCode", v)

					return nil
				}),
				compat.Rename("Transform", "Transforms"),
				compat.Rename("Parameters", "ArgumentList"),
				compat.Rename("AddParameters", "AdditionalArgumentList"),
				compat.Rename("SecureParameters", "SecureArgumentList"),
				compat.Rename("LogName", "LogFileName"),
				compat.Split("IgnoreExitCodes", "IgnoreExitCodes", ","),
			},
			compat.WithPassThru("PassThru"),
		),

		compat.NewOperation("Execute-Process",
			compat.NewDefinition("Start-ADTProcess", "4.0.0", "Executes a process with logging and exit code handling"),
			[]string{
				"FilePath", "ArgumentList", "SecureArgumentList", "WindowStyle",
				"CreateNoWindow", "WorkingDirectory", "NoWait", "WaitForMsiExec",
				"MsiExecWaitTime", "IgnoreExitCodes", "NoExitOnProcessFailure",
				"PriorityClass", "PassThru",
			},
			[]compat.Step{
				compat.Drop("UseShellExecute", "shell execution is selected automatically"),
				compat.Rename("Path", "FilePath"),
				compat.Rename("Parameters", "ArgumentList"),
				compat.Rename("SecureParameters", "SecureArgumentList"),
				compat.Split("IgnoreExitCodes", "IgnoreExitCodes", ","),
				compat.Invert("ExitOnProcessFailure", "NoExitOnProcessFailure"),
				compat.MapValues("WindowStyle", "WindowStyle", map[string]string{
					"Normal":    "Normal",
					"Hidden":    "Hidden",
					"Maximized": "Maximized",
					"Minimized": "Minimized",
				}),
			},
			compat.WithPassThru("PassThru"),
		),
	}
}