package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	opt "github.com/mutablelogic/go-weatherdeck/pkg/opt"
	tool "github.com/mutablelogic/go-weatherdeck/pkg/tool"
	assert "github.com/stretchr/testify/assert"
)

type stubTool struct {
	name   string
	schema *jsonschema.Schema
	input  json.RawMessage
}

func (s *stubTool) Name() string                        { return s.name }
func (s *stubTool) Description() string                 { return "stub" }
func (s *stubTool) Schema() (*jsonschema.Schema, error) { return s.schema, nil }
func (s *stubTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	s.input = input
	return "ran " + s.name, nil
}

type defaultingTool struct {
	stubTool
}

func (d *defaultingTool) Prepare(_ context.Context, args map[string]any) map[string]any {
	if _, ok := args["country"]; !ok {
		args["country"] = "IN"
	}
	return args
}

func nameSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":    {Type: "string"},
			"country": {Type: "string"},
		},
		Required: []string{"name"},
	}
}

func TestRegister_InvalidName(t *testing.T) {
	tk, err := tool.NewToolkit()
	if err != nil {
		t.Fatal(err)
	}
	if err := tk.Register(&stubTool{name: "not a name"}); err == nil {
		t.Fatal("expected error for invalid name")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	_, err := tool.NewToolkit(&stubTool{name: "a"}, &stubTool{name: "a"})
	if !errors.Is(err, weatherdeck.ErrBadParameter) {
		t.Fatalf("expected ErrBadParameter, got %v", err)
	}
}

func TestToolsOrdered(t *testing.T) {
	assert := assert.New(t)
	tk, err := tool.NewToolkit(&stubTool{name: "zeta"}, &stubTool{name: "alpha"}, &stubTool{name: "mid"})
	assert.NoError(err)
	var names []string
	for _, v := range tk.Tools() {
		names = append(names, v.Name())
	}
	assert.Equal([]string{"zeta", "alpha", "mid"}, names)
	assert.NotNil(tk.Lookup("alpha"))
	assert.Nil(tk.Lookup("missing"))
}

func TestRunUnknown(t *testing.T) {
	assert := assert.New(t)
	tk, _ := tool.NewToolkit()
	_, _, err := tk.Run(context.Background(), "missing", nil)
	assert.ErrorIs(err, weatherdeck.ErrNotFound)
}

func TestRunValidates(t *testing.T) {
	assert := assert.New(t)
	stub := &stubTool{name: "named", schema: nameSchema()}
	tk, _ := tool.NewToolkit(stub)

	_, _, err := tk.Run(context.Background(), "named", map[string]any{})
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)

	_, _, err = tk.Run(context.Background(), "named", map[string]any{"name": 42})
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)

	args, out, err := tk.Run(context.Background(), "named", map[string]any{"name": "Pune"})
	assert.NoError(err)
	assert.Equal("ran named", out)
	assert.Equal(map[string]any{"name": "Pune"}, args)
	assert.JSONEq(`{"name":"Pune"}`, string(stub.input))
}

func TestRunPrepares(t *testing.T) {
	assert := assert.New(t)
	d := &defaultingTool{stubTool{name: "defaulting", schema: nameSchema()}}
	tk, _ := tool.NewToolkit(d)

	in := map[string]any{"name": "Pune"}
	args, _, err := tk.Run(context.Background(), "defaulting", in)
	assert.NoError(err)
	assert.Equal("IN", args["country"])
	assert.JSONEq(`{"name":"Pune","country":"IN"}`, string(d.input))

	// The caller's arguments are left unchanged
	assert.NotContains(in, "country")
	assert.Len(in, 1)

	args, _, err = tk.Run(context.Background(), "defaulting", map[string]any{"name": "Paris", "country": "FR"})
	assert.NoError(err)
	assert.Equal("FR", args["country"])
}

func TestWithToolkit(t *testing.T) {
	assert := assert.New(t)
	tk, _ := tool.NewToolkit(&stubTool{name: "a"})
	options, err := opt.Apply(tool.WithToolkit(tk))
	assert.NoError(err)
	assert.Same(tk, tool.FromOpts(options))

	options, err = opt.Apply(tool.WithToolkit(nil))
	assert.NoError(err)
	assert.Nil(tool.FromOpts(options))
}
