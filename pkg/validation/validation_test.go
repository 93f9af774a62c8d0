package validation_test

import (
	"regexp"
	"testing"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/aretw0/stencil/pkg/schema"
	"github.com/aretw0/stencil/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func registry(t *testing.T) *schema.Registry {
	t.Helper()
	b := dsl.New()
	b.Template("teaser").
		Validation(`\w`).
		Slot("title").Text().Limit(10).Min(1).End().
		Slot("lead").Text().Min(3).Validation(`\w+`)
	b.Template("plain").Text()

	reg := schema.NewRegistry()
	require.NoError(t, b.Register(reg))
	require.NoError(t, reg.Freeze())
	return reg
}

func TestCheckLimit(t *testing.T) {
	reg := registry(t)
	el, _ := reg.ByName("ck__teaser__title")
	p := message.NewPrinter(language.English)

	tests := []struct {
		text     string
		count    int
		exceeded bool
		msg      string
	}{
		{"", 0, false, "10 letters remaining."},
		{"  hello\u200b  ", 5, false, "5 letters remaining."},
		{"ünïcødé!!!", 10, false, "0 letters remaining."},
		{"way too long text", 17, true, "Too long: please remove at least 7 letters."},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res, ok := validation.CheckLimit(el, dsl.T(el.Name, tt.text))
			require.True(t, ok)
			assert.Equal(t, tt.count, res.Count)
			assert.Equal(t, tt.exceeded, res.Exceeded())
			assert.Equal(t, tt.msg, res.Message(p))
		})
	}

	plain, _ := reg.ByName("ck__plain")
	_, ok := validation.CheckLimit(plain, dsl.T(plain.Name, "x"))
	assert.False(t, ok, "no limit configured")
}

func TestCheckRequired(t *testing.T) {
	reg := registry(t)
	el, _ := reg.ByName("ck__teaser__lead")
	words := regexp.MustCompile(`\w+`)
	p := message.NewPrinter(language.English)

	tests := []struct {
		text string
		msg  string
	}{
		{"", "Too short: please add at least 3 letters."},
		{"one two", "Too short: please add at least 1 letters."},
		{"one two three", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res, ok := validation.CheckRequired(el, dsl.T(el.Name, tt.text), words)
			require.True(t, ok)
			assert.Equal(t, tt.msg == "", res.Valid())
			assert.Equal(t, tt.msg, res.Message(p))
		})
	}

	_, ok := validation.CheckRequired(el, dsl.T(el.Name, ""), nil)
	assert.False(t, ok, "no pattern")
}

func TestValidator(t *testing.T) {
	reg := registry(t)
	v, err := validation.New(reg)
	require.NoError(t, err)

	teaser := dsl.N("ck__teaser",
		dsl.T("ck__teaser__title", "   "),
		dsl.T("ck__teaser__lead", "only two"),
	)
	doc := domain.NewDocument(dsl.N("section", teaser))

	findings := v.Validate(doc)
	assert.Equal(t, []validation.Finding{
		{Element: "ck__teaser__title", Path: []int{0, 0, 0}, Rule: validation.RuleLimit, Message: "10 letters remaining."},
		{Element: "ck__teaser__title", Path: []int{0, 0, 0}, Rule: validation.RuleRequired, Message: "This is a mandatory field", Violation: true},
		{Element: "ck__teaser__lead", Path: []int{0, 0, 1}, Rule: validation.RuleRequired, Message: "Too short: please add at least 1 letters.", Violation: true},
	}, findings)
	assert.Len(t, validation.Violations(findings), 2)

	title, _ := reg.ByName("ck__teaser__title")
	lead, _ := reg.ByName("ck__teaser__lead")
	assert.Equal(t, `\w`, v.Pattern(title).String())
	assert.Equal(t, `\w+`, v.Pattern(lead).String())
}

func TestNew_InvalidPattern(t *testing.T) {
	b := dsl.New()
	b.Template("broken").Validation(`(`)

	reg := schema.NewRegistry()
	require.NoError(t, b.Register(reg))
	assert.ErrorIs(t, reg.Freeze(), schema.ErrInvalidConfig)

	// Untyped patterns are only caught when compiled.
	loose := schema.NewRegistry().WithConfigSchema(
		schema.DefaultConfigSchema.Extend(schema.ConfigSchema{"validation": schema.String()}),
	)
	require.NoError(t, b.Register(loose))
	require.NoError(t, loose.Freeze())

	_, err := validation.New(loose)
	assert.Error(t, err)
}

func TestCheckConstraint(t *testing.T) {
	b := dsl.New()
	b.Template("code").TextConstraint().Min(2).Max(4).Pattern(`[A-Z]+`).Helper("Capitals only.")
	b.Template("free").TextConstraint().Max(3)
	reg := schema.NewRegistry()
	require.NoError(t, b.Register(reg))
	require.NoError(t, reg.Freeze())
	v, err := validation.New(reg)
	require.NoError(t, err)

	tests := []struct {
		name string
		typ  string
		text string
		msg  string
	}{
		{"valid", "ck__code", " ABC ", ""},
		{"too short", "ck__code", "A", "Too short: please add at least 1 letters."},
		{"too long", "ck__code", "ABCDEF", "Too long: please remove at least 2 letters."},
		{"pattern must match the whole text", "ck__code", "ABc", "Capitals only."},
		{"no pattern", "ck__free", "abc", ""},
		{"max only", "ck__free", "abcd", "Too long: please remove at least 1 letters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := v.Check(dsl.T(tt.typ, tt.text))
			if tt.msg == "" {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, validation.RuleConstraint, findings[0].Rule)
			assert.Equal(t, tt.msg, findings[0].Message)
			assert.True(t, findings[0].Violation)
		})
	}

	p := message.NewPrinter(language.English)
	assert.Equal(t, "Please match the requested format.", validation.ConstraintResult{Mismatch: true}.Message(p))

	plain, _ := reg.ByName("ck__free")
	_, ok := validation.CheckConstraint(plain, dsl.T(plain.Name, ""), nil)
	assert.True(t, ok)
}
