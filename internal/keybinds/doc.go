/*
Package keybinds provides customizable keyboard binding management.

# Overview

The keybinds package implements a context-aware keyboard binding system
for resto's application keys. Field editors use fixed modal keys and never
consult the registry.

# Key Concepts

Contexts:
  - Global: bindings available everywhere
  - Normal: request tab while nothing is being edited
  - History: history tab
  - Help: help overlay, falls back to Viewer
  - Viewer: scrollable content

A context may name a parent. Lookups walk context, then parents, then
global, so a key bound in a specific context overrides the global one.

# Configuration File Format

Overrides live in ~/.resto/keybinds.json. Comments and trailing commas are
accepted. Each section maps a key to an action; "none" removes a default:

	{
	  // send with s too
	  "normal": {
	    "s": "execute",
	    "Y": "none"
	  },
	  "history": {
	    "x": "history_delete"
	  }
	}

# Reserved Keys

ctrl+c always force quits. Binding it to anything else produces a Check
warning. `resto keybinds` prints the active bindings with any problems and
`resto keybinds --init` writes the defaults to keybinds.json.

# Multi-Key Sequences

Only "gg" is recognised. MatchMultiKey reports a partial match for the
first g when gg is bound in the context chain.

# Example Usage

	registry, err := LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}
	if action, ok := registry.Match(ContextNormal, "enter"); ok {
		// handle action
	}
*/
package keybinds
