package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	opt "github.com/mutablelogic/go-weatherdeck/pkg/opt"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	tool "github.com/mutablelogic/go-weatherdeck/pkg/tool"
	lo "github.com/samber/lo"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// run performs one round trip with the model: a call with the operations
// declared, the requested operations in order, then a follow-up call with
// the results and no operations declared.
func (a *Assistant) run(ctx context.Context, model string, messages []schema.Message) (*schema.ChatResponse, error) {
	turns := schema.Turns(messages, a.config.History)

	// First call
	turn, err := a.generate(ctx, model, turns, tool.WithToolkit(a.toolkit))
	if err != nil {
		return nil, fmt.Errorf("Model call failed (%s): %w", model, err)
	}

	// No operations requested: the reply is the text
	calls := turn.Calls()
	if len(calls) == 0 {
		return &schema.ChatResponse{
			Reply:     textOrDefault(turn.Text()),
			ToolsUsed: []string{},
			Data:      []schema.OperationResult{},
		}, nil
	}

	// Run the operations
	results := make([]schema.OperationResult, 0, len(calls))
	for _, call := range calls {
		results = append(results, a.runTool(ctx, call))
	}

	// Follow-up call with the results as a model turn
	data, err := json.Marshal(results)
	if err != nil {
		return nil, weatherdeck.ErrInternalServerError.Withf("marshal results: %v", err)
	}
	followup := append(append(make([]schema.Turn, 0, len(turns)+2), turns...), *turn, schema.NewTextTurn(schema.RoleModel, string(data)))
	final, err := a.generate(ctx, model, followup)
	if err != nil {
		return nil, fmt.Errorf("Follow-up model call failed (%s): %w", model, err)
	}

	return &schema.ChatResponse{
		Reply: textOrDefault(final.Text()),
		ToolsUsed: lo.Map(results, func(r schema.OperationResult, _ int) string {
			return r.Name
		}),
		Data: results,
	}, nil
}

// generate makes a single model call under the configured timeout
func (a *Assistant) generate(ctx context.Context, model string, turns []schema.Turn, opts ...opt.Opt) (_ *schema.Turn, err error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	ctx, endSpan := otel.StartSpan(a.tracer, ctx, "Generate",
		attribute.String("model", model),
		attribute.Int("turns", len(turns)),
	)
	defer func() { endSpan(err) }()

	opts = append(opts, opt.WithSystemPrompt(a.config.SystemPrompt))
	if a.config.Temperature != nil {
		opts = append(opts, opt.WithTemperature(*a.config.Temperature))
	}
	if a.config.MaxTokens > 0 {
		opts = append(opts, opt.WithMaxTokens(a.config.MaxTokens))
	}
	return a.generator.Generate(ctx, model, turns, opts...)
}

// runTool runs one requested operation. Failures are recorded in the
// result and never returned.
func (a *Assistant) runTool(ctx context.Context, call schema.Invocation) schema.OperationResult {
	var err error
	ctx, endSpan := otel.StartSpan(a.tracer, ctx, "Tool",
		attribute.String("name", call.Name),
	)
	defer func() { endSpan(err) }()

	args, output, err := a.toolkit.Run(ctx, call.Name, call.Args)
	result := schema.OperationResult{
		Name: call.Name,
		Args: args,
	}
	switch {
	case err != nil && a.toolkit.Lookup(call.Name) == nil:
		result.Error = "Unknown tool"
	case err != nil:
		result.Error = err.Error()
	default:
		result.OK = true
		result.Output = output
		if deleted, ok := output.(*schema.DeleteResult); ok {
			result.OK = deleted.OK
		}
	}

	slog.DebugContext(ctx, "tool", "name", call.Name, "ok", result.OK, "error", result.Error)
	return result
}

func textOrDefault(text string) string {
	if text == "" {
		return replyDefault
	}
	return text
}
