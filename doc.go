/*
Package stencil is a schema-driven structural reconciliation engine for
mutable, tree-shaped documents.

Authors declare a library of element templates: nested schemas made of fixed
slots, ordered containers, singleton-fill galleries, tabs and fill-in
placeholders. End users edit a live tree through any editing surface. After
every edit the engine restores the tree to a state that satisfies the schema,
keeping the user data it can still place correctly.

# Concept

A template library is compiled once into a frozen schema registry. Each live
node carries the canonical name of the schema element it instantiates
("ck__quote", "ck__quote__author"). Reconciliation visits the changed nodes
first and then the whole document, running the postfixers registered for the
element kind of every visited node, until a pass changes nothing.

# Usage

	loader, err := library.LoadFile("templates.yaml")
	if err != nil {
		log.Fatal(err)
	}

	eng, err := stencil.New(stencil.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	// Upcast host markup into a live tree and bring it into shape.
	doc, err := eng.Import(ctx, `<div class="page"><p class="paragraph">Hi</p></div>`)
	if err != nil {
		log.Fatal(err)
	}

	// Edit through commands; the touched nodes are reconciled.
	_, err = eng.Execute(ctx, doc, "moveDown", commands.Selection{Anchor: node}, commands.Args{})

	// Export the data back to markup.
	html, err := eng.Export(doc)
*/
package stencil
