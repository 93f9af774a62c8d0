/*
Package commands implements the selection-scoped editing commands of a live
document.

Every command locates its target with FindAncestor, walking up from the
selection anchor, and then mutates the tree with ordinary node operations. A
command does not repair the document itself: it reports the nodes it touched
in Result.Changed so the caller can hand them to the reconciliation
dispatcher.
*/
package commands
