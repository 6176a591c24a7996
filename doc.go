// Package vtengine provides a headless, single-threaded VT500-family
// terminal emulation engine: it turns a byte stream into screen state,
// and nothing else.
//
// This package has no display, no PTY, and no rendering concerns. It is
// meant to sit between something that produces terminal output (a PTY, a
// recorded session, a test fixture) and something that consumes screen
// state (a renderer, a scraper, an assertion):
//
//	ctl, _ := vtengine.New(24, 80)
//	ctl.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(ctl.String())
//
// # Architecture
//
// The package is organized around four small, independently useful types:
//
//   - [Parser]: a VT500-family state machine that turns bytes into [Command]s
//   - [Controller]: applies Commands to a [ScreenBuffer], tracks cursor,
//     style, modes, scroll region and the primary/alternate screen split
//   - [ScreenBuffer]: a plain 2D grid of [Cell] plus a [Cursor] — it knows
//     how to scroll, erase, insert and delete, but never decides when to
//   - [Cell]: a character plus optional foreground/background [Color],
//     SGR attributes, and an optional [Hyperlink]
//
// Controller.Write feeds bytes through the Parser and applies each
// resulting Command in order, so a Controller can sit directly at the
// end of a PTY-reading io.Copy.
//
// # Dual buffers
//
// Controller maintains a primary and an alternate [ScreenBuffer]. Full-screen
// applications (vim, less, htop) switch to the alternate buffer via CSI
// ?1049h and back via CSI ?1049l:
//
//	if ctl.InAltScreen() {
//	    // a full-screen app is in control
//	}
//
// # Colors
//
// [Color] is a plain RGBA value. [Palette16] and [Palette256] resolve SGR
// and 256-color indices to concrete colors; [ParseColorSpec] parses the
// "rgb:RR/GG/BB" and "#RRGGBB" forms used by OSC color queries and
// assignments (OSC 4/10/11).
//
// # Providers
//
// Two small interfaces let an embedder opt into side channels without the
// engine depending on anything concrete:
//
//   - [ResponseWriter] (an alias for io.Writer) receives device-status and
//     cursor-position reports (CSI 5n / CSI 6n)
//   - [ClipboardProvider] handles OSC 52 clipboard read/write
//
// Both default to no-ops; set them with [WithResponseWriter] and
// [WithClipboard].
//
// # Thread safety
//
// Controller carries no internal lock. It is meant to be driven by a
// single goroutine reading from one source; callers needing concurrent
// access must provide their own synchronization.
//
// # Supported sequences
//
// The engine supports cursor movement (CUU/CUD/CUF/CUB/CNL/CPL/CHA/CUP/HVP/VPA),
// cursor save/restore (SCP/RCP), erase (ED/EL/ECH), insert/delete
// (ICH/DCH/IL/DL), scrolling (SU/SD, DECSTBM), SGR character attributes
// with 16/256/24-bit color, DEC private and ANSI mode set/reset, the
// alternate screen buffer, bracketed paste, window title and icon name
// (OSC 0/1/2), palette redefinition (OSC 4), default foreground/background
// (OSC 10/11), hyperlinks (OSC 8), clipboard access (OSC 52), and device
// status reports (CSI 5n/6n).
package vtengine
