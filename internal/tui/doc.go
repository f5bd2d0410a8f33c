/*
Package tui implements the terminal user interface for resto.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, message types and Update
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Side effects (sending requests, clipboard, history)
  - editor.go: The vim field editor used for every editable field
  - render.go: View rendering for the Request, History and Help screens

# Editing

Every editable field (URL, headers, body, query, the response inspector and
the filter and search prompts) is edited through a fieldEditor: a
vim.Controller driving a textbuf.Buffer. While a field editor is open all
keys go to it; Enter in Normal mode commits the text back to its field and
Esc in Normal mode discards it. Yanks land in the shared clipboard register
so they survive between fields.

# Modes

  - ModeNormal: keys resolve through the keybinds registry
  - ModeEditing: keys go to the field editor
  - ModeHelp: scrollable keybinding reference
  - ModeHistoryClearConfirm: y/n prompt before clearing history
*/
package tui
