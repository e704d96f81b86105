package cli

// Command descriptions
const (
	MsgRootShort = "Inspect title content and add-on manifests"
	MsgRootLong  = `apploader resolves application titles from content containers: it selects
the main program, merges updates and registers add-on content.

The commands here inspect the configuration and the per-title data it uses.`

	MsgVersionShort = "Print version information"
	MsgConfigShort  = "Print the effective configuration as TOML"
	MsgPathsShort   = "Show the directories apploader uses"
	MsgDlcShort     = "Inspect add-on content"
	MsgDlcListShort = "List the add-on content manifest of a title"
	MsgDlcListLong  = `List the entries of the add-on content manifest stored for a title, keyed by
its program id base (16 hex digits). Each entry is shown as enabled, disabled
or missing when its container file no longer exists.`
	MsgDlcListExample = `  apploader dlc list 0100000000010000
  apploader dlc list 0x0100000000010000 --games-dir ~/games`
)

// Flag descriptions
const (
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Config file (default is $XDG_CONFIG_HOME/apploader/config.toml)"
	MsgFlagGamesDir      = "Override the games directory"
	MsgFlagProgramIDBase = "Also show the per-title paths of this program id base"
)

// Output
const (
	MsgVersionFormat    = "apploader version %s\n  commit: %s\n  built:  %s\n"
	MsgPathFormat       = "%-14s %s\n"
	MsgNoManifest       = "No add-on content manifest for %s (%s)\n"
	MsgManifestHeader   = "Add-on content of %s"
	MsgContainerFormat  = "%s\n"
	MsgEntryFormat      = "%s  %s  %s"
	MsgEmptyContainer   = "(no entries)"
	MsgManifestSummary  = "%d enabled, %d disabled, %d missing\n"
	MsgStatusEnabled    = "enabled"
	MsgStatusDisabled   = "disabled"
	MsgStatusMissing    = "missing"
	MsgErrInitPaths     = "failed to initialize paths: %w"
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrProgramIDBase = "invalid program id base %q: expected up to 16 hex digits"
	MsgErrNoCommand     = "no command specified"
)
