// Package symtab provides the symbol table collaborator for transducers:
// an independently-owned bidirectional mapping between label values and
// their string spellings.
//
// The transducer core holds tables opaquely — it may copy, clear, or
// replace a table wholesale, but never edits entries on behalf of an
// algorithm (inversion, for instance, swaps whole tables). Label 0 is
// conventionally reserved for the epsilon symbol by callers; the table
// itself does not enforce it.
//
// Tables are not synchronized; share them read-only or hand each
// goroutine its own Copy.
//
// Complexity: lookups in both directions are O(1); Copy and Equal are
// O(n) in the number of symbols.
package symtab
