package widget

// TabExitForwardMsg is sent when Tab is pressed on the last input of a step,
// signalling the parent to move focus to the button bar.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on the first input of
// a step, signalling the parent to move focus to the button bar from the end.
type TabExitBackwardMsg struct{}
