package catalog

import (
	"github.com/appdeploykit/compat-framework/compat"
)

func systemOperations() []*compat.Operation {
	return []*compat.Operation{
		compat.NewOperation("Write-Log",
			compat.NewDefinition("Write-ADTLogEntry", "4.0.0", "Writes a message to the deployment log"),
			[]string{"Message", "Severity", "Source", "ScriptSection", "LogFileDirectory", "LogFileName"},
			[]compat.Step{
				compat.Drop("LogType", "the log format is fixed by the logging subsystem"),
				compat.Rename("Text", "Message"),
			},
			compat.WithPipeline("Text"),
		),

		compat.NewOperation("Resolve-Error",
			compat.NewDefinition("Resolve-ADTErrorRecord", "4.0.0", "Renders error records with invocation detail"),
			[]string{"ErrorRecord", "Property", "ExcludeErrorRecord", "ExcludeErrorInvocation"},
			[]compat.Step{
				compat.Invert("GetErrorRecord", "ExcludeErrorRecord"),
				compat.Invert("GetErrorInvocation", "ExcludeErrorInvocation"),
			},
			compat.WithPipeline("ErrorRecord"),
		),

		compat.NewOperation("Test-Battery",
			compat.NewDefinition("Test-ADTBattery", "4.0.0", "Reports whether the device is running on battery"),
			[]string{"PassThru"},
			nil,
			compat.WithPassThru("PassThru"),
		),

		compat.NewOperation("Get-FreeDiskSpace",
			compat.NewDefinition("Get-ADTFreeDiskSpace", "4.0.0", "Returns the free disk space of a drive in MB"),
			[]string{"Drive"},
			nil,
			compat.WithContinueOnError("ContinueOnError", true),
		),

		compat.NewOperation("Block-AppExecution",
			compat.NewDefinition("Block-ADTAppExecution", "4.0.0", "Blocks execution of the given processes for the deployment"),
			[]string{"ProcessName"},
			nil,
		),

		compat.NewOperation("Unblock-AppExecution",
			compat.NewDefinition("Unblock-ADTAppExecution", "4.0.0", "Lifts an application execution block"),
			nil,
			nil,
		),

		compat.NewOperation("Update-Desktop",
			compat.NewDefinition("Update-ADTDesktop", "4.0.0", "Refreshes the desktop and environment variables"),
			nil,
			nil,
			compat.WithContinueOnError("ContinueOnError", true),
		),
	}
}
