// Package knuthbendix implements Knuth-Bendix completion for finitely
// presented semigroups and monoids.
//
// A finitely presented semigroup is given by a Presentation: an ordered
// alphabet together with a set of defining relations (pairs of words that
// are declared equal). Completion attempts to turn the relations into a
// confluent string rewriting system: a set of oriented rules that rewrite
// every word to a unique normal form, so that two words are equal in the
// semigroup exactly when their normal forms coincide.
//
// The engine follows the classic KBS_2 procedure (Sims, "Computation with
// finitely presented groups", ch. 2): orient each relation under a reduction
// ordering, then repeatedly resolve overlaps between left-hand sides of
// rules, adding a new rule for every critical pair whose two resolutions
// rewrite to different normal forms, until no unresolved overlaps remain.
// Completion may not terminate in general; the engine therefore supports
// cooperative cancellation through context.Context, a hard cap on the number
// of active rules, and a bound on the length of overlaps considered. An
// interrupted run leaves behind a sound (if possibly incomplete) rewriting
// system that can still be used to rewrite words.
//
// Two interchangeable rewriting strategies are provided:
//   - RewriteFromLeft: an ordered index over rule left-hand sides, keyed by
//     reverse-lexicographic comparison, probed once per scanned character.
//   - RewriteTrie: an Aho-Corasick trie with suffix links, giving
//     constant-time transitions per character and a sub-quadratic
//     confluence check along suffix-link chains.
//
// Both strategies produce identical results for the same presentation,
// ordering and overlap policy; they differ only in performance profile.
package knuthbendix
