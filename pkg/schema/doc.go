// Package schema builds the template element tree a live document is
// reconciled against.
//
// A template library is a set of declarative snippets. Each snippet is
// registered as a tree of Elements with globally unique canonical names:
//
//	reg := schema.NewRegistry()
//	_, err := reg.Register(&schema.SourceNode{
//	    Tag:   "div",
//	    Attrs: []schema.Attr{{Key: "ck-name", Value: "card"}, {Key: "class", Value: "card"}},
//	    Children: []*schema.SourceNode{
//	        {Tag: "h2", Attrs: []schema.Attr{{Key: "ck-type", Value: "text"}}},
//	    },
//	}, nil)
//	// registers "ck__card" and "ck__card__child0"
//
// Attributes prefixed with "ck-" are schema configuration and never leave the
// schema. The class attribute feeds the structural Matcher used when importing
// external markup. Every other attribute is a data attribute whose value is
// the default applied to live nodes.
//
// References between templates (ck-conversions, ck-contains) may point
// forward, so they are resolved in Freeze, after the whole library has been
// registered. A frozen Registry is immutable and safe to share.
package schema
