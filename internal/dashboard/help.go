package dashboard

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help key map for the given mode.
func HelpBindings(mode Mode) help.KeyMap {
	switch mode {
	case ModeForm, ModePrompt:
		return FormKeyMap()
	case ModeBrowse:
		return BrowseKeyMap()
	case ModeConfirm:
		return ConfirmKeyMap()
	default:
		return MenuKeyMap()
	}
}
