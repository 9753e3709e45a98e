package gemini

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	opt "github.com/mutablelogic/go-weatherdeck/pkg/opt"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	tool "github.com/mutablelogic/go-weatherdeck/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate sends the conversation to the model and returns the model turn.
// A toolkit set with tool.WithToolkit is declared as callable functions.
func (c *Client) Generate(ctx context.Context, model string, turns []schema.Turn, opts ...opt.Opt) (*schema.Turn, error) {
	if model == "" {
		return nil, weatherdeck.ErrBadParameter.With("model is required")
	}
	if len(turns) == 0 {
		return nil, weatherdeck.ErrBadParameter.With("at least one turn is required")
	}

	// Apply options
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Build request
	request, err := generateRequestFromOpts(turns, options)
	if err != nil {
		return nil, err
	}

	// Create JSON payload
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	// Send the request
	var response geminiGenerateResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("models", model+":generateContent")); err != nil {
		return nil, err
	}

	return turnFromGeminiResponse(&response)
}

///////////////////////////////////////////////////////////////////////////////
// REQUEST BUILDING

// generateRequestFromOpts builds a geminiGenerateRequest from the turns and applied options
func generateRequestFromOpts(turns []schema.Turn, options *opt.Options) (*geminiGenerateRequest, error) {
	request := &geminiGenerateRequest{
		Contents: geminiContentsFromTurns(turns),
	}

	// System instruction
	if systemPrompt := options.GetString(opt.SystemPromptKey); systemPrompt != "" {
		request.SystemInstruction = geminiNewTextContent("", systemPrompt)
	}

	// Generation config, omitted when nothing is configured
	if options.Has(opt.TemperatureKey) {
		v := options.GetFloat64(opt.TemperatureKey)
		request.GenerationConfig.Temperature = &v
	}
	if options.Has(opt.MaxTokensKey) {
		request.GenerationConfig.MaxOutputTokens = int(options.GetUint(opt.MaxTokensKey))
	}

	// Tools from toolkit
	if tk := tool.FromOpts(options); tk != nil {
		decls, err := geminiFunctionDeclsFromTools(tk.Tools())
		if err != nil {
			return nil, err
		}
		if len(decls) > 0 {
			request.Tools = []*geminiTool{{
				FunctionDeclarations: decls,
			}}
		}
	}

	return request, nil
}
