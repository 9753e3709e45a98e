package gemini

import (
	"encoding/json"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	tool "github.com/mutablelogic/go-weatherdeck/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TURNS → GEMINI WIRE FORMAT (OUTBOUND)

// geminiContentsFromTurns converts turns to wire contents. Roles other than
// the user are sent as the model.
func geminiContentsFromTurns(turns []schema.Turn) []*geminiContent {
	contents := make([]*geminiContent, 0, len(turns))
	for _, turn := range turns {
		contents = append(contents, geminiContentFromTurn(turn))
	}
	return contents
}

// geminiContentFromTurn converts a single turn to wire content
func geminiContentFromTurn(turn schema.Turn) *geminiContent {
	role := geminiRoleModel
	if schema.TurnRole(turn.Role) == schema.RoleUser {
		role = geminiRoleUser
	}
	parts := make([]*geminiPart, 0, len(turn.Parts))
	for _, part := range turn.Parts {
		if part.Call != nil {
			parts = append(parts, &geminiPart{
				FunctionCall: &geminiFunctionCall{
					Name: part.Call.Name,
					Args: part.Call.Args,
				},
			})
		} else {
			parts = append(parts, &geminiPart{Text: part.Text})
		}
	}

	// The API rejects a content with no parts
	if len(parts) == 0 {
		parts = append(parts, &geminiPart{Text: ""})
	}

	return &geminiContent{
		Role:  role,
		Parts: parts,
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CONVERSION

// geminiFunctionDeclsFromTools converts tools to wire function declarations,
// passing the parameter schema through as JSON schema
func geminiFunctionDeclsFromTools(tools []tool.Tool) ([]*geminiFunctionDeclaration, error) {
	decls := make([]*geminiFunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decl := &geminiFunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
		}

		// Convert the jsonschema.Schema to map[string]any via JSON round-trip
		s, err := t.Schema()
		if err != nil {
			return nil, weatherdeck.ErrBadParameter.Withf("%s: %v", t.Name(), err)
		}
		if s != nil {
			data, err := json.Marshal(s)
			if err != nil {
				return nil, weatherdeck.ErrInternalServerError.Withf("%s: %v", t.Name(), err)
			}
			if err := json.Unmarshal(data, &decl.ParametersJSONSchema); err != nil {
				return nil, weatherdeck.ErrInternalServerError.Withf("%s: %v", t.Name(), err)
			}
		}

		decls = append(decls, decl)
	}
	return decls, nil
}

///////////////////////////////////////////////////////////////////////////////
// GEMINI WIRE FORMAT → TURN (INBOUND)

// turnFromGeminiResponse converts the first candidate of a response to a
// model turn. Thought parts are dropped. A response with no candidates is
// an empty model turn, unless the prompt was blocked.
func turnFromGeminiResponse(response *geminiGenerateResponse) (*schema.Turn, error) {
	turn := &schema.Turn{Role: schema.RoleModel}
	if response == nil {
		return turn, nil
	}
	if len(response.Candidates) == 0 {
		if response.PromptFeedback != nil && response.PromptFeedback.BlockReason != "" {
			return nil, weatherdeck.ErrBadParameter.Withf("prompt blocked: %s", response.PromptFeedback.BlockReason)
		}
		return turn, nil
	}

	candidate := response.Candidates[0]
	if candidate.Content == nil {
		return turn, nil
	}
	for _, part := range candidate.Content.Parts {
		switch {
		case part == nil || part.Thought:
			continue
		case part.FunctionCall != nil:
			args := part.FunctionCall.Args
			if args == nil {
				args = make(map[string]any)
			}
			turn.Parts = append(turn.Parts, schema.Part{
				Call: &schema.Invocation{Name: part.FunctionCall.Name, Args: args},
			})
		case part.Text != "":
			turn.Parts = append(turn.Parts, schema.Part{Text: part.Text})
		}
	}
	return turn, nil
}
