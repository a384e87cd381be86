package prompts

import (
	"fmt"
	"strings"

	lcprompts "github.com/tmc/langchaingo/prompts"
)

// Command holds the named slots of an instruction sent to the browsing agent.
type Command struct {
	Persona     string
	IntentLabel string
	Intent      string
	Task        string
	OutputShape string
}

var (
	commandPrompt   = lcprompts.NewPromptTemplate(CommandTemplate, []string{"persona", "intent_label", "intent", "task", "output_shape"})
	normalizePrompt = lcprompts.NewPromptTemplate(NormalizeTemplate, []string{"output_shape", "input"})
)

func RenderCommand(c Command) (string, error) {
	out, err := commandPrompt.Format(map[string]any{
		"persona":      c.Persona,
		"intent_label": c.IntentLabel,
		"intent":       c.Intent,
		"task":         c.Task,
		"output_shape": c.OutputShape,
	})
	if err != nil {
		return "", fmt.Errorf("render command: %w", err)
	}
	return out, nil
}

func SearchCommand(intent string) (string, error) {
	return RenderCommand(Command{
		Persona:     Persona,
		IntentLabel: "Prompt",
		Intent:      intent,
		Task:        SearchTask,
		OutputShape: SearchOutputShape,
	})
}

// MessageSellersCommand joins the URLs with single spaces. An empty list
// still renders a command with an empty URL segment.
func MessageSellersCommand(urls []string) (string, error) {
	return RenderCommand(Command{
		Persona:     Persona,
		IntentLabel: "URLs",
		Intent:      strings.Join(urls, " "),
		Task:        MessageSellersTask,
	})
}

func NormalizeInstruction(input string) (string, error) {
	out, err := normalizePrompt.Format(map[string]any{
		"output_shape": SearchOutputShape,
		"input":        input,
	})
	if err != nil {
		return "", fmt.Errorf("render normalize instruction: %w", err)
	}
	return out, nil
}
