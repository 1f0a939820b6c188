// Package banner implements the demo-mode banner as a Bubble Tea component.
//
// The banner shows the temporary address of a demo server and offers two
// modals: "Connect info", with one tab of instructions per client language,
// and "Reset configuration", which flushes the demo session one second after
// confirmation.
//
// The address is passed in explicitly. When it is empty or fails the
// validator the component renders nothing and ignores input.
//
//	m := banner.New(banner.Options{
//	    URI:       cluster.DemoURI(self),
//	    Navigator: reset.NewHTTPNavigator(adminURL),
//	})
//	defer m.Close()
//	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
//
// # Modal State
//
// The two modals toggle independently. Keys go to the top-most open modal:
// the reset confirmation, then connect info, then the banner itself.
// Confirming a reset leaves the modal open until the navigation finishes.
// Close (or ctrl+c / q) cancels a pending reset.
package banner
