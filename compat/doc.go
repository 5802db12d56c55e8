/*
Package compat implements a versioned compatibility facade: a fixed set of
legacy-named operations that validate and rewrite their historical parameter
sets into the current API's shape, emit deprecation notices, and delegate to
the replacement operation.

# Core Components

Operation:
  - One legacy operation: its fixed historical name, the replacement
    Definition (ID + semver version), the replacement's accepted parameter
    set, and an ordered list of translation Steps.

Step:
  - A single rewrite or validation: Rename, Invert, Split, MapValues,
    Synthesize, Drop (dead parameter), RequireFile, RequirePattern,
    MutuallyExclusive, Custom.

Registry:
  - Stores legacy operations, retrieval by legacy name. Built once at startup.

Facade:
  - Per invocation: emit the deprecation notice, apply the operation's steps,
    enforce that the forwarded mapping is a subset of the replacement's
    accepted parameters, pick the error mode from the caller's
    continue-on-error preference, and delegate exactly once via the Invoker.

Stream:
  - The batching variant for operations that historically accepted pipeline
    input one item at a time: items accumulate across the invocation and are
    delegated in a single call.

Reporter:
  - Audit trail of every invocation, including failures suppressed by
    continue-on-error.

# Error taxonomy

ContractViolationError and TranslationImpossibleError are raised locally,
before delegation, and are always fatal. ExecutionError wraps a failure of the
delegated call and is the only category the caller's continue-on-error
preference can suppress.

# Basic Usage

	reg := compat.NewRegistry(
		compat.NewOperation("Remove-File",
			compat.NewDefinition("Remove-ADTFile", "4.0.0", "Removes files or folders"),
			[]string{"Path", "Recurse"},
			nil,
			compat.WithPipeline("Path"),
		),
	)

	facade := compat.New(lggr, invoker, compat.WithRegistry(reg))
	result, err := facade.Invoke(ctx, "Remove-File",
		param.New().With("Path", []string{"a.txt"}))
*/
package compat
