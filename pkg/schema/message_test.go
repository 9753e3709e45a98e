package schema_test

import (
	"fmt"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func TestTurnRole(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(schema.RoleUser, schema.TurnRole("user"))
	assert.Equal(schema.RoleUser, schema.TurnRole("USER"))
	assert.Equal(schema.RoleUser, schema.TurnRole(""))
	assert.Equal(schema.RoleModel, schema.TurnRole("assistant"))
	assert.Equal(schema.RoleModel, schema.TurnRole("system"))
	assert.Equal(schema.RoleModel, schema.TurnRole("tool"))
}

func TestTurnsTruncates(t *testing.T) {
	assert := assert.New(t)

	var messages []schema.Message
	for i := 0; i < 15; i++ {
		role := schema.RoleUser
		if i%2 == 1 {
			role = schema.RoleAssistant
		}
		messages = append(messages, schema.Message{Role: role, Content: fmt.Sprint(i)})
	}

	turns := schema.Turns(messages, schema.DefaultHistory)
	assert.Len(turns, 10)
	assert.Equal("5", turns[0].Text())
	assert.Equal("14", turns[9].Text())
	assert.Equal(schema.RoleModel, turns[0].Role)
	assert.Equal(schema.RoleUser, turns[9].Role)
}

func TestTurnsShortHistory(t *testing.T) {
	assert := assert.New(t)
	turns := schema.Turns([]schema.Message{{Content: "hi"}}, schema.DefaultHistory)
	assert.Len(turns, 1)
	assert.Equal(schema.RoleUser, turns[0].Role)
	assert.Empty(schema.Turns(nil, schema.DefaultHistory))
}

func TestTurnCalls(t *testing.T) {
	assert := assert.New(t)
	turn := schema.Turn{
		Role: schema.RoleModel,
		Parts: []schema.Part{
			{Text: "Let me "},
			{Call: &schema.Invocation{Name: "searchCities", Args: map[string]any{"q": "Pune"}}},
			{Text: "check"},
			{Call: &schema.Invocation{Name: "getWeather"}},
		},
	}
	assert.Equal("Let me check", turn.Text())
	calls := turn.Calls()
	assert.Len(calls, 2)
	assert.Equal("searchCities", calls[0].Name)
	assert.Equal("getWeather", calls[1].Name)
}

func TestLastContent(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("", schema.LastContent(nil))
	assert.Equal("b", schema.LastContent([]schema.Message{{Content: "a"}, {Content: "b"}}))
}
