package kbdctl

// Input is the part of a window the keyboard handling needs.
type Input interface {
	EscapePressed() bool
	SetShouldClose(bool)
}

// ProcessInput is polled once per frame. Escape is the only key there is;
// holding it asks the window to close.
func ProcessInput(in Input) bool {
	if in.EscapePressed() {
		in.SetShouldClose(true)
		return true
	}
	return false
}
