// Package game implements the cribbage counting trainer played on top of the
// scoring engine.
//
// Each round deals a hand from a shuffled deck, computes every scoring
// combination once, and then asks a UserInterface for guesses. A guess names
// a set of cards and the points claimed for them:
//
//   - a matching card set with the right score earns the player its points
//   - a matching card set with the wrong score gives the computer a penalty
//   - a card set matching no combination gives the computer a larger penalty
//
// When the player stops guessing, any combination left unclaimed is awarded
// to the computer as muggins and the player forfeits the round.
//
// # Basic Usage
//
//	deck := cards.NewDeck(randutil.New(seed))
//	g := game.NewGame(ui, deck, logger, quartz.NewReal(), game.DefaultOptions())
//	if err := g.Run(ctx); err != nil {
//	    return err
//	}
//
// # User Interfaces
//
// UserInterface is implemented by the console package (line based prompt)
// and the tui package (Bubble Tea). The game loop never depends on which
// variant is active.
package game
