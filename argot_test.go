package argot

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrec/argot/types"
)

type arrayWriter struct {
	data *[]string
}

func newArrayWriter() *arrayWriter {
	return &arrayWriter{data: &[]string{}}
}

func (writer arrayWriter) Write(p []byte) (int, error) {
	*writer.data = append(*writer.data, string(p))

	return len(p), nil
}

func TestParser_ScalarFlag(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	leftovers, err := p.Parse([]string{"--name", "topaz"})
	assert.NoError(t, err)
	assert.Empty(t, leftovers)

	value, found := p.Get("name")
	assert.True(t, found)
	assert.Equal(t, "topaz", value)
}

func TestParser_AssignmentSyntax(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	_, err := p.Parse([]string{"--name=topaz"})
	assert.NoError(t, err)

	value, _ := p.Get("name")
	assert.Equal(t, "topaz", value)
}

func TestParser_BoolAssignment(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--force", NewArg(WithKind(types.Standalone))))
	require.NoError(t, p.AddArgument("target", NewArg(WithKind(types.Scalar), WithArity(types.ZeroOrOne))))

	leftovers, err := p.Parse([]string{"--force=false"})
	require.NoError(t, err)
	assert.Empty(t, leftovers)
	assert.False(t, p.GetBool("force"))
	assert.True(t, p.GetBool("no_force"))

	// the assignment value never reaches the positional stream
	_, found := p.Get("target")
	assert.False(t, found)

	_, err = p.Parse([]string{"--force=yes"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParser_CountAssignment(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--verbose", NewArg(WithKind(types.Counter), WithAliases("-v"))))

	leftovers, err := p.Parse([]string{"-v=3"})
	require.NoError(t, err)
	assert.Empty(t, leftovers)
	assert.Equal(t, 3, p.GetCount("verbose"))

	_, err = p.Parse([]string{"-v=-1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParser_UnknownAssignmentStaysIntact(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	leftovers, err := p.Parse([]string{"--nope=x", "--name", "topaz"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--nope=x"}, leftovers)
}

func TestParser_ParseString(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	_, err := p.ParseString(`--name "Jo Ann"`)
	assert.NoError(t, err)

	value, _ := p.Get("name")
	assert.Equal(t, "Jo Ann", value)
}

func TestParser_DuplicateRegistration(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--foo", NewArg(WithKind(types.Scalar))))

	err := p.AddArgument("--foo", NewArg(WithKind(types.Scalar)))
	assert.ErrorIs(t, err, ErrDuplicateArgument)

	// an alias collision counts as much as a dest collision
	err = p.AddArgument("--bar", NewArg(WithAliases("--foo"), WithKind(types.Scalar)))
	assert.ErrorIs(t, err, ErrDuplicateArgument)
}

func TestParser_FailedRegistrationLeavesArgumentUntouched(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--env", NewArg(WithKind(types.Scalar))))

	dup := NewArg(WithAliases("--env"), WithKind(types.Scalar))
	err := p.AddArgument("--environment", dup)
	require.ErrorIs(t, err, ErrDuplicateArgument)
	assert.Equal(t, []string{"--env"}, dup.Names)
}

func TestParser_ReplaceArgumentClearsValue(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--foo", NewArg(WithKind(types.Scalar))))

	_, err := p.Parse([]string{"--foo", "old"})
	require.NoError(t, err)
	_, found := p.Get("foo")
	require.True(t, found)

	require.NoError(t, p.ReplaceArgument("--foo", NewArg(WithKind(types.Scalar))))
	_, found = p.Get("foo")
	assert.False(t, found, "reset should clear the stored value immediately")

	_, err = p.Parse([]string{"--foo", "new"})
	assert.NoError(t, err)
	value, _ := p.Get("foo")
	assert.Equal(t, "new", value)
}

func TestParser_BoolComplement(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--force", NewArg(WithKind(types.Standalone))))

	_, err := p.Parse([]string{"--force"})
	require.NoError(t, err)
	assert.True(t, p.GetBool("force"))
	assert.False(t, p.GetBool("no_force"))

	p2 := NewParser()
	require.NoError(t, p2.AddArgument("--force", NewArg(WithKind(types.Standalone))))
	_, err = p2.Parse([]string{"--name", "x"})
	require.NoError(t, err)
	assert.False(t, p2.GetBool("force"))
	assert.True(t, p2.GetBool("no_force"))
}

func TestParser_ArrayAccumulation(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--emails", NewArg(
		WithAliases("-e"),
		WithKind(types.Array),
		WithSplitOn(","))))

	_, err := p.Parse([]string{"--emails", "a,b"})
	require.NoError(t, err)
	_, err = p.Parse([]string{"--emails", "c"})
	require.NoError(t, err)

	list, found := p.GetList("emails")
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b", "c"}, list)
}

func TestParser_PairMerge(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--param", NewArg(
		WithKind(types.Pair),
		WithSplitOn(","))))

	_, err := p.Parse([]string{"--param", "a=1,b=2"})
	require.NoError(t, err)
	_, err = p.Parse([]string{"--param", "b=3"})
	require.NoError(t, err)

	pairs, found := p.GetMap("param")
	assert.True(t, found)
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, pairs)
}

func TestParser_PairWithoutSeparator(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--param", NewArg(WithKind(types.Pair))))

	_, err := p.Parse([]string{"--param", "not-a-pair"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParser_CountAccumulation(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("-v", NewArg(WithKind(types.Counter))))

	_, err := p.Parse([]string{"-v", "-v"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.GetCount("v"))

	_, err = p.Parse([]string{"-v"})
	require.NoError(t, err)
	assert.Equal(t, 3, p.GetCount("v"))
}

func TestParser_PositionalReservation(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("files", NewArg(
		WithKind(types.Array),
		WithArity(types.OneOrMore))))
	require.NoError(t, p.AddArgument("output", NewArg(WithKind(types.Scalar))))

	leftovers, err := p.Parse([]string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	files, _ := p.GetList("files")
	assert.Equal(t, []string{"a", "b"}, files, "one token must stay reserved for the trailing positional")
	output, _ := p.Get("output")
	assert.Equal(t, "c", output)
}

func TestParser_PositionalArityError(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("files", NewArg(
		WithKind(types.Array),
		WithArity(types.OneOrMore))))

	_, err := p.Parse([]string{"--stray"})
	assert.ErrorIs(t, err, ErrArity)
}

func TestParser_PositionalZeroOrOne(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("target", NewArg(
		WithKind(types.Scalar),
		WithArity(types.ZeroOrOne))))

	_, err := p.Parse([]string{"--noise"})
	require.NoError(t, err)
	_, found := p.Get("target")
	assert.False(t, found)

	_, err = p.Parse([]string{"here"})
	require.NoError(t, err)
	target, _ := p.Get("target")
	assert.Equal(t, "here", target)
}

func TestParser_RemainingClaimsFlagShapedTokens(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("args", NewArg(
		WithKind(types.Array),
		WithArity(types.Remaining))))

	leftovers, err := p.Parse([]string{"run", "--fast", "now"})
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	args, _ := p.GetList("args")
	assert.Equal(t, []string{"run", "--fast", "now"}, args)
}

func TestParser_EndOfFlagsMarker(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))
	require.NoError(t, p.AddArgument("args", NewArg(
		WithKind(types.Array),
		WithArity(types.Remaining))))

	_, err := p.Parse([]string{"--name", "x", "--", "--name", "y"})
	require.NoError(t, err)

	name, _ := p.Get("name")
	assert.Equal(t, "x", name)
	args, _ := p.GetList("args")
	assert.Equal(t, []string{"--name", "y"}, args)
}

func TestParser_NamedFlagMissingValue(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	_, err := p.Parse([]string{"--name"})
	assert.ErrorIs(t, err, ErrArity)
}

func TestParser_UnmatchedTokensAreLeftovers(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	leftovers, err := p.Parse([]string{"--unknown", "stray", "--name", "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--unknown", "stray"}, leftovers)
	assert.Equal(t, leftovers, p.Leftovers())
}

func TestParser_NegativeNumberIsNotAFlag(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("offset", NewArg(WithKind(types.Scalar))))

	_, err := p.Parse([]string{"-5"})
	require.NoError(t, err)
	offset, _ := p.Get("offset")
	assert.Equal(t, "-5", offset)
}

func TestParser_RequiredArgument(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--out", NewArg(
		WithKind(types.Scalar),
		SetRequired(true))))

	_, err := p.Parse([]string{"--noise"})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = p.Parse([]string{"--out", "here"})
	assert.NoError(t, err)
}

func TestParser_RequiredSatisfiedByDefault(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--mode", NewArg(
		WithKind(types.Scalar),
		SetRequired(true),
		WithDefaultValue("dev"))))

	_, err := p.Parse([]string{"--noise"})
	assert.NoError(t, err)
	mode, _ := p.Get("mode")
	assert.Equal(t, "dev", mode)
}

func TestParser_EmptyTokenListLeavesNamespaceUntouched(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--mode", NewArg(
		WithKind(types.Scalar),
		WithDefaultValue("dev"))))

	leftovers, err := p.Parse(nil)
	assert.NoError(t, err)
	assert.Empty(t, leftovers)

	ns, ok := p.Namespace().(*Namespace)
	require.True(t, ok)
	assert.Zero(t, ns.Len())
}

func TestParser_ChoiceValidation(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--env", NewArg(
		WithKind(types.Scalar),
		WithFoldedChoices("dev", "prod"))))

	_, err := p.Parse([]string{"--env", "DEV"})
	assert.NoError(t, err)
	env, _ := p.Get("env")
	assert.Equal(t, "DEV", env)

	_, err = p.Parse([]string{"--env", "staging"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParser_ExactChoiceValidationIsCaseSensitive(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--env", NewArg(
		WithKind(types.Scalar),
		WithChoices("dev", "prod"))))

	_, err := p.Parse([]string{"--env", "DEV"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParser_ChoiceValidationPerArrayElement(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--env", NewArg(
		WithKind(types.Array),
		WithSplitOn(","),
		WithChoices("dev", "prod"))))

	_, err := p.Parse([]string{"--env", "dev,staging"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParser_PredicateValidator(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--port", NewArg(
		WithKind(types.Scalar),
		WithValidator(func(value string) error {
			if strings.HasPrefix(value, "0") {
				return fmt.Errorf("leading zero")
			}
			return nil
		}))))

	_, err := p.Parse([]string{"--port", "8080"})
	assert.NoError(t, err)

	_, err = p.Parse([]string{"--port", "080"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParser_CommandDispatch(t *testing.T) {
	child := NewParser()
	require.NoError(t, child.AddArgument("-v", NewArg(WithKind(types.Counter))))

	p := NewParser()
	require.NoError(t, p.AddCommand(&Command{Name: "list", Parser: child}))

	leftovers, err := p.Parse([]string{"list", "-v"})
	require.NoError(t, err)
	assert.Empty(t, leftovers)
	assert.Equal(t, "list", p.CurrentCommand())
	assert.Equal(t, 1, p.GetCount("v"), "the child resolves into the shared namespace")
}

func TestParser_CommandAlias(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddCommand(NewCommand(
		WithCommandName("remove"),
		WithCommandAliases("rm", "del"))))

	_, err := p.Parse([]string{"rm"})
	require.NoError(t, err)
	assert.Equal(t, "remove", p.CurrentCommand(), "dispatch records the canonical name")
}

func TestParser_UnknownCommand(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddCommand(&Command{Name: "list"}))

	_, err := p.Parse([]string{"frobnicate"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParser_CommandOneLevelOnly(t *testing.T) {
	grandchild := NewParser()
	child := NewParser()
	require.NoError(t, child.AddCommand(&Command{Name: "deep", Parser: grandchild}))

	p := NewParser()
	require.NoError(t, p.AddCommand(&Command{Name: "list", Parser: child}))

	// "deep" must not dispatch on the child; it falls through to leftovers
	leftovers, err := p.Parse([]string{"list", "deep"})
	require.NoError(t, err)
	assert.Equal(t, []string{"deep"}, leftovers)
}

func TestParser_CommandCallbacks(t *testing.T) {
	ran := 0
	p := NewParser()
	require.NoError(t, p.AddCommand(NewCommand(
		WithCommandName("sync"),
		WithCallback(func(parser *Parser, command *Command) error {
			ran++
			return nil
		}))))
	require.NoError(t, p.AddCommand(NewCommand(
		WithCommandName("fail"),
		WithCallback(func(parser *Parser, command *Command) error {
			return errors.New("boom")
		}))))

	_, err := p.Parse([]string{"sync"})
	require.NoError(t, err)
	_, err = p.Parse([]string{"fail"})
	require.NoError(t, err)

	assert.Equal(t, 1, p.ExecuteCommands())
	assert.Equal(t, 1, ran)
	assert.NoError(t, p.CommandResult("sync"))
	assert.Error(t, p.CommandResult("fail"))
}

func TestParser_HelpCommand(t *testing.T) {
	writer := newArrayWriter()

	child := NewParser()
	require.NoError(t, child.AddArgument("--all", NewArg(WithKind(types.Standalone))))

	p, err := NewParserWith(
		WithProg("prog"),
		WithHelpWriter(writer),
		WithCommand(NewCommand(
			WithCommandName("list"),
			WithCommandDescription("list things"),
			WithCommandParser(child))))
	require.NoError(t, err)

	leftovers, err := p.Parse([]string{"help", "list"})
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	target, _ := p.Get(HelpCommandKey)
	assert.Equal(t, "list", target)
	assert.NotEmpty(t, *writer.data)
	assert.Contains(t, strings.Join(*writer.data, ""), "--all")
}

func TestParser_HelpCommandWithoutTarget(t *testing.T) {
	writer := newArrayWriter()
	p, err := NewParserWith(
		WithProg("prog"),
		WithHelpWriter(writer),
		WithCommand(NewCommand(WithCommandName("list"))))
	require.NoError(t, err)

	_, err = p.Parse([]string{"help"})
	require.NoError(t, err)

	output := strings.Join(*writer.data, "")
	assert.Contains(t, output, "usage: prog")
	assert.Contains(t, output, "list")
}

func TestParser_HelpFlagIsObservableOnly(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	_, err := p.Parse([]string{"--help", "--name", "x"})
	require.NoError(t, err)
	assert.True(t, p.GetBool("help"), "resolution completes normally; the caller inspects the flag")
	name, _ := p.Get("name")
	assert.Equal(t, "x", name)
}

func TestParser_InheritanceRoundTrip(t *testing.T) {
	parent, err := NewParserWith(
		WithArgument("--emails", NewArg(
			WithKind(types.Array),
			WithSplitOn(","))),
		WithArgument("--env", NewArg(
			WithKind(types.Scalar),
			WithFoldedChoices("dev", "prod"))))
	require.NoError(t, err)

	child, err := NewParserFrom(parent)
	require.NoError(t, err)

	tokens := []string{"--emails", "a,b", "--env", "PROD"}
	_, err = parent.Parse(tokens)
	require.NoError(t, err)
	_, err = child.Parse(tokens)
	require.NoError(t, err)

	parentNs := parent.Namespace().(*Namespace)
	childNs := child.Namespace().(*Namespace)
	require.Equal(t, parentNs.Keys(), childNs.Keys())
	for _, key := range parentNs.Keys() {
		parentValue, _ := parentNs.GetAttr(key)
		childValue, _ := childNs.GetAttr(key)
		assert.Equal(t, parentValue, childValue, "key %q", key)
	}
}

func TestParser_InheritanceIsIndependent(t *testing.T) {
	parent := NewParser()
	require.NoError(t, parent.AddArgument("--name", NewArg(WithKind(types.Scalar))))

	child, err := NewParserFrom(parent)
	require.NoError(t, err)
	require.NoError(t, child.AddArgument("--extra", NewArg(WithKind(types.Scalar))))

	_, found := parent.registry.LookupByToken("--extra")
	assert.False(t, found, "child registration must not leak into the parent")

	// and the parent's spec object is not aliased by the child
	parentArg, _ := parent.registry.LookupByToken("--name")
	childArg, _ := child.registry.LookupByToken("--name")
	require.NotNil(t, childArg)
	assert.NotSame(t, parentArg, childArg)
}

func TestParser_InheritanceKeepsHelpWriter(t *testing.T) {
	writer := newArrayWriter()
	parent, err := NewParserWith(
		WithProg("prog"),
		WithHelpWriter(writer),
		WithCommand(NewCommand(WithCommandName("list"))))
	require.NoError(t, err)

	child, err := NewParserFrom(parent)
	require.NoError(t, err)

	_, err = child.Parse([]string{"help"})
	require.NoError(t, err)
	assert.Contains(t, strings.Join(*writer.data, ""), "usage: prog")
}

func TestParser_SeededNamespace(t *testing.T) {
	seed := NewNamespace()
	seed.SetAttr("mode", ScalarValue("from-config"))

	p, err := NewParserWith(WithNamespace(seed))
	require.NoError(t, err)
	require.NoError(t, p.AddArgument("--mode", NewArg(WithKind(types.Scalar))))

	_, err = p.Parse([]string{"--noise"})
	require.NoError(t, err)
	mode, _ := p.Get("mode")
	assert.Equal(t, "from-config", mode, "a seeded value survives when the flag is absent")

	_, err = p.Parse([]string{"--mode", "cli"})
	require.NoError(t, err)
	mode, _ = p.Get("mode")
	assert.Equal(t, "cli", mode)
}
