package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCommands struct {
	Chat ChatCommand `cmd:"" name:"chat" help:"Send a message to the assistant." group:"CHAT"`
}

type ChatCommand struct {
	Text string `arg:"" help:"User input text"`
	New  bool   `name:"new" help:"Start a new conversation" optional:""`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	cacheKeyTranscript = "transcript"

	// maxTranscript is the number of messages kept between invocations
	maxTranscript = 20
)

var (
	reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	parent, err := ctx.UserContext(ctx.ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, parent, "ChatCommand")
	defer func() { endSpan(err) }()

	// Continue the stored conversation unless asked not to
	var transcript []schema.Message
	if !cmd.New {
		if _, err := ctx.cache.Get(cacheKeyTranscript, &transcript); err != nil {
			transcript = nil
		}
	}
	transcript = appendTranscript(transcript, schema.Message{Role: schema.RoleUser, Content: cmd.Text})

	// Send the conversation, keep the transcript only on success
	response, err := client.Chat(parent, schema.ChatRequest{Messages: transcript})
	if err != nil {
		return err
	}
	transcript = appendTranscript(transcript, schema.Message{Role: schema.RoleAssistant, Content: response.Reply})
	if err := ctx.cache.Set(cacheKeyTranscript, transcript); err != nil {
		return err
	}

	// Print the reply
	if ctx.Verbose && len(response.ToolsUsed) > 0 {
		label := "tools: " + strings.Join(response.ToolsUsed, ", ")
		if isTerminal(os.Stdout) {
			label = "\033[2m" + label + "\033[0m"
		}
		fmt.Println(label)
	}
	fmt.Println(format(response.Reply, isTerminal(os.Stdout)))
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// appendTranscript adds a message and drops the oldest beyond maxTranscript
func appendTranscript(transcript []schema.Message, message schema.Message) []schema.Message {
	transcript = append(transcript, message)
	if len(transcript) > maxTranscript {
		transcript = transcript[len(transcript)-maxTranscript:]
	}
	return transcript
}

// format renders **bold** markers, as bold on a terminal or plain otherwise
func format(text string, terminal bool) string {
	if terminal {
		return reBold.ReplaceAllString(text, "\033[1m$1\033[0m")
	}
	return reBold.ReplaceAllString(text, "$1")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
