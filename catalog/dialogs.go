package catalog

import (
	"fmt"
	"strconv"

	"github.com/appdeploykit/compat-framework/compat"
)

func dialogOperations() []*compat.Operation {
	return []*compat.Operation{
		compat.NewOperation("Show-InstallationPrompt",
			compat.NewDefinition("Show-ADTInstallationPrompt", "4.0.0", "Displays a custom installation prompt"),
			[]string{
				"Title", "Message", "MessageAlignment", "ButtonLeftText",
				"ButtonRightText", "ButtonMiddleText", "Icon", "NoWait",
				"PersistPrompt", "MinimizeWindows", "Timeout", "NotTopMost",
			},
			[]compat.Step{
				compat.Drop("ExitOnTimeout", "timeouts always return to the caller"),
				compat.Invert("TopMost", "NotTopMost"),
			},
		),

		compat.NewOperation("Show-InstallationWelcome",
			compat.NewDefinition("Show-ADTInstallationWelcome", "4.0.0", "Displays the welcome dialog with app closing and deferral options"),
			[]string{
				"CloseProcesses", "CloseProcessesCountdown", "ForceCloseProcessesCountdown",
				"Silent", "AllowDefer", "AllowDeferCloseProcesses", "DeferTimes",
				"DeferDays", "DeferDeadline", "CheckDiskSpace", "RequiredDiskSpace",
				"PersistPrompt", "BlockExecution", "PromptToSave", "MinimizeWindows",
				"ForceCountdown", "CustomText", "NotTopMost",
			},
			[]compat.Step{
				compat.Split("CloseApps", "CloseProcesses", ","),
				compat.Rename("CloseAppsCountdown", "CloseProcessesCountdown"),
				compat.Rename("ForceCloseAppsCountdown", "ForceCloseProcessesCountdown"),
				compat.Rename("AllowDeferCloseApps", "AllowDeferCloseProcesses"),
				compat.Invert("TopMost", "NotTopMost"),
				compat.MutuallyExclusive("Silent", "PersistPrompt"),
			},
		),

		compat.NewOperation("Show-DialogBox",
			compat.NewDefinition("Show-ADTDialogBox", "4.0.0", "Displays a dialog box with the given buttons and icon"),
			[]string{"Text", "Title", "Buttons", "DefaultButton", "Icon", "Timeout", "NotTopMost"},
			[]compat.Step{
				compat.Invert("TopMost", "NotTopMost"),
				// v3 accepted the timeout as a string of seconds.
				compat.Synthesize("Timeout", "Timeout", func(v any) (any, error) {
					s, ok := v.(string)
					if !ok {
						return v, nil
					}
					secs, err := strconv.Atoi(s)
					if err != nil {
						return nil, fmt.Errorf("timeout %q is not a number of seconds", s)
					}
					return secs, nil
				}),
			},
		),

		compat.NewOperation("Show-BalloonTip",
			compat.NewDefinition("Show-ADTBalloonTip", "4.0.0", "Displays a balloon tip notification"),
			[]string{"BalloonTipText", "BalloonTipTitle", "BalloonTipIcon"},
			[]compat.Step{
				compat.Drop("BalloonTipTime", "display duration is controlled by the OS notification settings"),
				compat.Drop("NoWait", "balloon tips are always asynchronous"),
			},
		),
	}
}
