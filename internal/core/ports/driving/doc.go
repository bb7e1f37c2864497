// Package driving defines the interfaces through which the outside
// world drives the core (primary ports). The CLI adapter calls these;
// an excluded web/API layer would call the same surface.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
