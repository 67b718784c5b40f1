// Package reconcile decides which player an incoming identity claim refers to.
//
// Claims arrive from two untrusted sources: rows of the membership sheet
// (ImportRecord, rich in contact data) and tournament rosters
// (ExternalPlayerRef, a name and maybe a registry number). The Engine matches
// them against the PlayerStore using, in order of trust:
//
//  1. the registry number, authoritative once attached to a player;
//  2. the exact name, with same-name candidates ranked by Score;
//  3. for roster refs, the name or any alias, validated by IsKnownAs so a
//     substring hit like "fred robertson" never matches "fred roberts".
//
// A contradicting birth date, or a registry number that already belongs to
// someone else, yields a *ConflictError and leaves the store untouched.
// Ambiguous roster names resolve to OutcomeAmbiguous instead of a guess.
//
// # Usage
//
//	engine := reconcile.NewEngine(players.NewStore(db), logger)
//	res, err := engine.ResolveFromImport(ctx, record)
//	if errors.Is(err, reconcile.ErrIdentityConflict) {
//	    // skip the row
//	}
package reconcile
