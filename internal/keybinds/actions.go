package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextNormal  Context = "normal"  // Request tab, nothing being edited
	ContextHistory Context = "history" // History tab
	ContextHelp    Context = "help"    // Help overlay
	ContextViewer  Context = "viewer"  // Scrollable content (help text, response)
)

// Contexts lists every known context.
var Contexts = []Context{ContextGlobal, ContextNormal, ContextHistory, ContextHelp, ContextViewer}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one item
	ActionNavigateDown   Action = "navigate_down"     // Move down one item
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page
	ActionHalfPageUp     Action = "half_page_up"      // Move up half page (ctrl+u)
	ActionHalfPageDown   Action = "half_page_down"    // Move down half page (ctrl+d)
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Tabs and layout
	ActionNextTab             Action = "next_tab"              // Request <-> History
	ActionPrevTab             Action = "prev_tab"              // Request <-> History
	ActionNextRequestSection  Action = "next_request_section"  // Headers / Body / Query
	ActionNextResponseSection Action = "next_response_section" // Body / Headers / Cookies
	ActionToggleFullscreen    Action = "toggle_fullscreen"     // none -> request -> response

	// Request actions
	ActionExecute        Action = "execute"         // Send the request
	ActionMethodNext     Action = "method_next"     // Cycle method forward
	ActionMethodPrev     Action = "method_prev"     // Cycle method backward
	ActionEditURL        Action = "edit_url"        // Edit the URL line
	ActionEditSection    Action = "edit_section"    // Edit the focused request section
	ActionInspectSection Action = "inspect_section" // Open the focused response section read-only
	ActionCopyAsCurl     Action = "copy_as_curl"    // Copy the request as a curl command
	ActionImportCurl     Action = "import_curl"     // Import a curl command from the clipboard
	ActionNewRequest     Action = "new_request"     // Reset the draft

	// Response actions
	ActionFilterResponse Action = "filter_response" // JMESPath filter prompt
	ActionCopyResponse   Action = "copy_response"   // Copy the response body

	// History actions
	ActionHistoryLoad   Action = "history_load"   // Load entry into the request tab
	ActionHistoryDelete Action = "history_delete" // Delete entry
	ActionHistoryClear  Action = "history_clear"  // Delete all entries
	ActionHistorySearch Action = "history_search" // Fuzzy search prompt

	// Modal actions
	ActionOpenHelp   Action = "open_help"   // Show help
	ActionCloseModal Action = "close_modal" // Close current overlay
)

// ActionInfo provides human-readable information about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:                {ActionQuit, "Quit application", "Global"},
	ActionQuitForce:           {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:          {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:        {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:              {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:            {ActionPageDown, "Page down", "Navigation"},
	ActionHalfPageUp:          {ActionHalfPageUp, "Half page up", "Navigation"},
	ActionHalfPageDown:        {ActionHalfPageDown, "Half page down", "Navigation"},
	ActionGoToTop:             {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:          {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionNextTab:             {ActionNextTab, "Next tab", "View"},
	ActionPrevTab:             {ActionPrevTab, "Previous tab", "View"},
	ActionNextRequestSection:  {ActionNextRequestSection, "Next request section", "View"},
	ActionNextResponseSection: {ActionNextResponseSection, "Next response section", "View"},
	ActionToggleFullscreen:    {ActionToggleFullscreen, "Toggle fullscreen", "View"},
	ActionExecute:             {ActionExecute, "Send request", "Request"},
	ActionMethodNext:          {ActionMethodNext, "Next method", "Request"},
	ActionMethodPrev:          {ActionMethodPrev, "Previous method", "Request"},
	ActionEditURL:             {ActionEditURL, "Edit URL", "Request"},
	ActionEditSection:         {ActionEditSection, "Edit section", "Request"},
	ActionInspectSection:      {ActionInspectSection, "Inspect response section", "Response"},
	ActionCopyAsCurl:          {ActionCopyAsCurl, "Copy as curl", "Request"},
	ActionImportCurl:          {ActionImportCurl, "Import curl from clipboard", "Request"},
	ActionNewRequest:          {ActionNewRequest, "New request", "Request"},
	ActionFilterResponse:      {ActionFilterResponse, "Filter response (JMESPath)", "Response"},
	ActionCopyResponse:        {ActionCopyResponse, "Copy response body", "Response"},
	ActionHistoryLoad:         {ActionHistoryLoad, "Load entry", "History"},
	ActionHistoryDelete:       {ActionHistoryDelete, "Delete entry", "History"},
	ActionHistoryClear:        {ActionHistoryClear, "Clear history", "History"},
	ActionHistorySearch:       {ActionHistorySearch, "Search history", "History"},
	ActionOpenHelp:            {ActionOpenHelp, "Open help", "Information"},
	ActionCloseModal:          {ActionCloseModal, "Close", "Information"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one resto handles.
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok || action == ActionGoToTopPrepare
}
