package main

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
}

// actionDefinitions contains all action definitions with default keybindings.
// Pointer gestures (wheel zoom, drag pan, double-click reset, strip clicks)
// are positional and handled outside the binding table.
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, "Quit application"},
	{"help", []string{"Shift+Slash"}, "Show/hide help"},
	{"info", []string{"KeyI"}, "Show/hide info display"},
	{"next", []string{"ArrowRight", "KeyD", "Space"}, "Next image"},
	{"previous", []string{"ArrowLeft", "KeyA", "Backspace"}, "Previous image"},
	{"jump_first", []string{"Home"}, "Jump to first image"},
	{"jump_last", []string{"End"}, "Jump to last image"},
	{"toggle_thumbnails", []string{"KeyT", "Tab"}, "Expand/collapse thumbnail strip"},
	{"fullscreen", []string{"Enter", "KeyF"}, "Toggle fullscreen"},
	{"cycle_sort", []string{"Shift+KeyS"}, "Cycle sort method (Natural/Simple/Entry)"},

	// Zoom and pan
	{"zoom_in", []string{"Equal", "Shift+Equal"}, "Zoom in"},
	{"zoom_out", []string{"Minus"}, "Zoom out"},
	{"zoom_reset", []string{"Key0"}, "Reset to 100% zoom, centered"},
	{"pan_up", []string{"Shift+ArrowUp"}, "Pan up"},
	{"pan_down", []string{"Shift+ArrowDown"}, "Pan down"},
	{"pan_left", []string{"Shift+ArrowLeft"}, "Pan left"},
	{"pan_right", []string{"Shift+ArrowRight"}, "Pan right"},
}

// ActionExecutor maps action names to InputActions calls. Single source of
// truth for dispatch so the keybinding manager stays a pure input matcher.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// Returns false for unknown action names.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpToImage(0)
	case "jump_last":
		if total := inputActions.GetTotalCount(); total > 0 {
			inputActions.JumpToImage(total - 1)
		}
	case "toggle_thumbnails":
		inputActions.ToggleThumbnails()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "cycle_sort":
		inputActions.CycleSortMethod()
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "zoom_reset":
		inputActions.ZoomReset()
	case "pan_up":
		inputActions.PanBy(0, keyPanStep)
	case "pan_down":
		inputActions.PanBy(0, -keyPanStep)
	case "pan_left":
		inputActions.PanBy(keyPanStep, 0)
	case "pan_right":
		inputActions.PanBy(-keyPanStep, 0)
	default:
		return false
	}

	return true
}

// keyPanStep is the pan distance per key press, in screen pixels.
const keyPanStep = 64.0

// globalActionExecutor is the shared ActionExecutor instance
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}
