// Package ui contains the Bubble Tea program that lets a resident browse the
// plot catalog from a terminal. The Model focuses on message orchestration,
// while dedicated helpers own navigation, input, rendering, and registry
// updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - In prompt mode key presses go to the command prompt (internal/ui/input.go).
//     Everything else is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function.
//   - Navigation helpers (internal/ui/navigation.go) move the grid cursor and
//     turn key presses and mouse clicks into slot clicks, which the catalog
//     dispatcher resolves against the open menu session.
//
// State ownership:
//   - The open menu lives on the host.Local viewer, exactly as a server would
//     hold it for a player. The model only tracks the highlighted slot in an
//     internal/ui/state.GridCursor.
//   - Command lines run through the internal/ui/command bus. The line runs
//     inside Update and its outcome comes back as a command.Result message.
//
// Backend interactions:
//   - A backend.Watcher reloads the registry database; Update waits for its
//     events and hands them to applyBackendEvent, which swaps the new snapshot
//     into the catalog service. Menus already open keep their snapshot until
//     they are reopened.
package ui
