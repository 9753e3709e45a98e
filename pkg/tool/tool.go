package tool

import (
	"context"
	"encoding/json"
	"maps"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Preparer is implemented by tools which repair or complete their
// arguments before validation, for example by applying defaults
type Preparer interface {
	Prepare(ctx context.Context, args map[string]any) map[string]any
}

// Toolkit is an ordered collection of tools with unique names
type Toolkit struct {
	tools []Tool
	index map[string]Tool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		index: make(map[string]Tool),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in registration order
func (tk *Toolkit) Tools() []Tool {
	return append([]Tool(nil), tk.tools...)
}

// Register adds one or more tools to the toolkit
func (tk *Toolkit) Register(tools ...Tool) error {
	for _, t := range tools {
		name := t.Name()
		if !types.IsIdentifier(name) {
			return weatherdeck.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.index[name]; exists {
			return weatherdeck.ErrBadParameter.Withf("duplicate tool name: %q", name)
		}
		tk.index[name] = t
		tk.tools = append(tk.tools, t)
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.index[name]
}

// Run executes a tool by name. Arguments are first passed through the
// tool's Prepare method when it has one, then validated against the tool
// schema. The arguments actually used are returned with the output.
func (tk *Toolkit) Run(ctx context.Context, name string, args map[string]any) (map[string]any, any, error) {
	tool := tk.Lookup(name)
	if tool == nil {
		return args, nil, weatherdeck.ErrNotFound.Withf("tool not found: %q", name)
	}

	// Repair a copy of the arguments, leaving the caller's map unchanged
	args = maps.Clone(args)
	if args == nil {
		args = make(map[string]any)
	}
	if preparer, ok := tool.(Preparer); ok {
		args = preparer.Prepare(ctx, args)
	}

	// Validate against schema if provided
	schema, err := tool.Schema()
	if err != nil {
		return args, nil, weatherdeck.ErrBadParameter.Withf("schema generation failed: %v", err)
	}
	if schema != nil {
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return args, nil, weatherdeck.ErrBadParameter.Withf("schema resolution failed: %v", err)
		}
		if err := resolved.Validate(args); err != nil {
			return args, nil, weatherdeck.ErrBadParameter.Withf("input validation failed: %v", err)
		}
	}

	// Run the tool with raw JSON
	input, err := json.Marshal(args)
	if err != nil {
		return args, nil, weatherdeck.ErrBadParameter.Withf("failed to marshal input: %v", err)
	}
	output, err := tool.Run(ctx, json.RawMessage(input))
	return args, output, err
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	names := make([]string, 0, len(tk.tools))
	for _, t := range tk.tools {
		names = append(names, t.Name())
	}
	return types.Stringify(names)
}
