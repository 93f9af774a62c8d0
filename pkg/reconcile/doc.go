/*
Package reconcile restores live documents to a state that satisfies a frozen
schema registry.

It has three layers:

  - FixSlots, the matching algorithm that seats existing children into the
    fixed slots of an element and synthesizes the missing ones.
  - The kind postfixers (Element, Container, Gallery, Tabs), registered on a
    registry with RegisterDefaults.
  - The Dispatcher, which visits the nodes touched by an edit, applies
    attribute defaults, runs the postfixers of each node's kind and drives
    whole-document passes until a fixed point is reached.

Reconciliation is synchronous and single-writer: the caller must not mutate
the document while a pass runs.
*/
package reconcile
