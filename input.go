package main

// InputHandler processes keyboard input for the current frame. Pointer
// input (wheel zoom, drag pan, double-click) is positional and handled by
// the game against the view state directly.
type InputHandler struct {
	inputActions      InputActions
	keybindingManager *KeybindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, keybindingManager *KeybindingManager) *InputHandler {
	return &InputHandler{
		inputActions:      inputActions,
		keybindingManager: keybindingManager,
	}
}

// HandleInput runs every bound action whose key combination fired.
// Returns true if any action executed.
func (h *InputHandler) HandleInput() bool {
	processed := false
	for _, def := range actionDefinitions {
		if h.keybindingManager.ExecuteAction(def.Name, h.inputActions) {
			processed = true
		}
	}
	return processed
}
