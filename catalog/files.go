package catalog

import (
	"github.com/appdeploykit/compat-framework/compat"
)

// fileOperations covers the filesystem surface. These operations historically
// accepted pipeline input and defaulted to continuing on error, so a single
// unreadable file did not abort a whole deployment.
func fileOperations() []*compat.Operation {
	return []*compat.Operation{
		compat.NewOperation("Remove-File",
			compat.NewDefinition("Remove-ADTFile", "4.0.0", "Removes one or more files or directories"),
			[]string{"Path", "LiteralPath", "Recurse"},
			nil,
			compat.WithContinueOnError("ContinueOnError", true),
			compat.WithPipeline("Path"),
		),

		compat.NewOperation("Copy-File",
			compat.NewDefinition("Copy-ADTFile", "4.0.0", "Copies files to a destination path"),
			[]string{"Path", "Destination", "Recurse", "Flatten", "FileCopyMode", "ContinueFileCopyOnError"},
			[]compat.Step{
				compat.RequireFile("Path"),
				compat.Synthesize("UseRobocopy", "FileCopyMode", func(v any) (any, error) {
					if b, ok := v.(bool); ok && b {
						return "Robocopy", nil
					}
					return "Native", nil
				}),
			},
			compat.WithContinueOnError("ContinueOnError", true),
		),

		compat.NewOperation("Copy-FileToUserProfiles",
			compat.NewDefinition("Copy-ADTFileToUserProfiles", "4.0.0", "Copies files to all user profiles"),
			[]string{"Path", "Destination", "Recurse", "ExcludeNTAccount", "IncludeSystemProfiles", "ExcludeServiceProfiles"},
			[]compat.Step{
				compat.Invert("ExcludeSystemProfiles", "IncludeSystemProfiles"),
			},
			compat.WithContinueOnError("ContinueOnError", true),
			compat.WithPipeline("Path"),
		),

		compat.NewOperation("New-Folder",
			compat.NewDefinition("New-ADTFolder", "4.0.0", "Creates a folder if it does not exist"),
			[]string{"Path"},
			nil,
			compat.WithContinueOnError("ContinueOnError", true),
		),

		compat.NewOperation("Remove-Folder",
			compat.NewDefinition("Remove-ADTFolder", "4.0.0", "Removes a folder and optionally its contents"),
			[]string{"Path", "DisableRecursion"},
			nil,
			compat.WithContinueOnError("ContinueOnError", true),
		),
	}
}
