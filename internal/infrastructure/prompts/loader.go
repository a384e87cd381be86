package prompts

import (
	_ "embed"
)

//go:embed persona.txt
var Persona string

//go:embed command.txt
var CommandTemplate string

//go:embed search_task.txt
var SearchTask string

//go:embed message_sellers_task.txt
var MessageSellersTask string

//go:embed normalize.txt
var NormalizeTemplate string

//go:embed normalize_system.txt
var NormalizeSystemPrompt string

// SearchOutputShape is the example result shown to both the browsing agent
// and the completion service.
const SearchOutputShape = "{'url': 'URL', 'errors': ['ERRORS']}"
