package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerViewerBindings(r)
	registerNormalModeBindings(r)
	registerHistoryBindings(r)
	registerHelpBindings(r)

	r.SetParent(ContextHelp, ContextViewer)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "tab", ActionNextTab)
	r.Register(ContextGlobal, "shift+tab", ActionPrevTab)
}

// registerViewerBindings sets up common navigation for scrollable content
func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
	r.Register(ContextViewer, "ctrl+u", ActionHalfPageUp)
	r.Register(ContextViewer, "ctrl+d", ActionHalfPageDown)
	r.Register(ContextViewer, "g", ActionGoToTopPrepare)
	r.Register(ContextViewer, "gg", ActionGoToTop)
	r.Register(ContextViewer, "G", ActionGoToBottom)
	r.Register(ContextViewer, "home", ActionGoToTop)
	r.Register(ContextViewer, "end", ActionGoToBottom)
}

// registerNormalModeBindings sets up the request tab
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)
	r.Register(ContextNormal, "?", ActionOpenHelp)
	r.Register(ContextNormal, "enter", ActionExecute)
	r.Register(ContextNormal, "m", ActionMethodNext)
	r.Register(ContextNormal, "M", ActionMethodPrev)
	r.Register(ContextNormal, "u", ActionEditURL)
	r.Register(ContextNormal, "e", ActionEditSection)
	r.Register(ContextNormal, "r", ActionInspectSection)
	r.Register(ContextNormal, "]", ActionNextRequestSection)
	r.Register(ContextNormal, "}", ActionNextResponseSection)
	r.Register(ContextNormal, "f", ActionToggleFullscreen)
	r.Register(ContextNormal, "y", ActionCopyAsCurl)
	r.Register(ContextNormal, "Y", ActionCopyResponse)
	r.Register(ContextNormal, "p", ActionImportCurl)
	r.Register(ContextNormal, "n", ActionNewRequest)
	r.Register(ContextNormal, "/", ActionFilterResponse)

	// response scrolling
	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextNormal, "ctrl+u", ActionHalfPageUp)
	r.Register(ContextNormal, "ctrl+d", ActionHalfPageDown)
	r.Register(ContextNormal, "pgup", ActionPageUp)
	r.Register(ContextNormal, "pgdown", ActionPageDown)
	r.Register(ContextNormal, "g", ActionGoToTopPrepare)
	r.Register(ContextNormal, "gg", ActionGoToTop)
	r.Register(ContextNormal, "G", ActionGoToBottom)
}

// registerHistoryBindings sets up keybindings for the history tab
func registerHistoryBindings(r *Registry) {
	r.Register(ContextHistory, "q", ActionQuit)
	r.Register(ContextHistory, "?", ActionOpenHelp)
	r.Register(ContextHistory, "enter", ActionHistoryLoad)
	r.Register(ContextHistory, "d", ActionHistoryDelete)
	r.Register(ContextHistory, "D", ActionHistoryClear)
	r.Register(ContextHistory, "/", ActionHistorySearch)
	r.Register(ContextHistory, "esc", ActionCloseModal)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHistory, "pgup", ActionPageUp)
	r.Register(ContextHistory, "pgdown", ActionPageDown)
	r.Register(ContextHistory, "g", ActionGoToTopPrepare)
	r.Register(ContextHistory, "gg", ActionGoToTop)
	r.Register(ContextHistory, "G", ActionGoToBottom)
	r.Register(ContextHistory, "home", ActionGoToTop)
	r.Register(ContextHistory, "end", ActionGoToBottom)
}

// registerHelpBindings sets up keybindings for help viewer
func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
}
