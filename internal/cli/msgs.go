package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Find the applications that can open your files"
	MsgCandidatesShort = "List the applications able to open the files"
	MsgLaunchShort     = "Print the commands that open the files with an application"
	MsgPickShort       = "Choose an application interactively and print its commands"
	MsgDetailsShort    = "Show the desktop entry behind an application"
	MsgMimeTypesShort  = "Show the detected MIME types"
	MsgSettingsShort   = "List or change settings"
	MsgSettingsList    = "List every setting and its value"
	MsgSettingsSet     = "Change one setting and save it"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Prompts and notices
	MsgPickPrompt   = "Open with [1-%d]: "
	MsgSettingSaved = "%s = %t (saved to %s)"

	// Error messages
	MsgErrNoMimeType    = "could not determine the type of %s"
	MsgErrNoApplication = "no application can open %s"
	MsgErrUnknownApp    = "application %q cannot open %s"
	MsgErrUnusableExec  = "application %q has no usable command line"
	MsgErrBadChoice     = "%q is not one of the listed applications"
	MsgErrBadBool       = "%q is not a boolean"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagConfig  = "Settings file (default $XDG_CONFIG_HOME/openwith/config.toml)"
	MsgFlagSet     = "Override a setting for this run, e.g. --set UseFileTool=false"
	MsgFlagApp     = "Desktop file id of the application, e.g. org.gnome.eog.desktop"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/candidates-long.txt
	msgCandidatesLongRaw string
	MsgCandidatesLong    = strings.TrimSpace(msgCandidatesLongRaw)

	//go:embed msgs/launch-long.txt
	msgLaunchLongRaw string
	MsgLaunchLong    = strings.TrimSpace(msgLaunchLongRaw)

	//go:embed msgs/pick-long.txt
	msgPickLongRaw string
	MsgPickLong    = strings.TrimSpace(msgPickLongRaw)

	//go:embed msgs/settings-long.txt
	msgSettingsLongRaw string
	MsgSettingsLong    = strings.TrimSpace(msgSettingsLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
