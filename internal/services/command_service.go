package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/llm"
)

// systemPrompt instructs the model to answer with a single tool call in
// JSON. Keeping the contract to four tools with flat string/number args
// makes the reply parseable without a streaming tool-call API.
const systemPrompt = `You are the routing layer of an expense tracker. Given the user's message, respond with ONLY a JSON object selecting exactly one tool:

{"tool": "add_expense", "args": {"text": "<the user's message>"}}
  - when the user is reporting money they spent

{"tool": "edit_last_expense", "args": {"amount": <number>, "description": "<text>"}}
  - when the user corrects their most recent expense; omit whichever field is unchanged

{"tool": "list_expenses", "args": {"query": "<the user's message>"}}
  - when the user asks what they spent, with optional category or time phrases

{"tool": "suggest_spending", "args": {"query": "<the user's message>"}}
  - when the user asks for budget advice or whether they can afford something

Respond with the JSON object only. No prose, no code fences.`

// toolCall is the JSON contract the model replies with.
type toolCall struct {
	Tool string `json:"tool"`
	Args struct {
		Text        string  `json:"text"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Query       string  `json:"query"`
	} `json:"args"`
}

// CommandResult is the outcome of routing a conversational message.
type CommandResult struct {
	Action string      `json:"action"`
	Reply  string      `json:"reply"`
	Data   interface{} `json:"data,omitempty"`
}

// commandService routes free-form messages to expense operations via an
// LLM tool-selection step.
type commandService struct {
	llm      llm.Client
	expenses ExpenseServicer
	advisor  AdvisorServicer
}

// NewCommandService creates a new CommandServicer.
func NewCommandService(client llm.Client, expenses ExpenseServicer, advisor AdvisorServicer) CommandServicer {
	return &commandService{llm: client, expenses: expenses, advisor: advisor}
}

// Execute asks the model which tool the message maps to, then runs that
// tool against the user's data. A reply with no tool call at all is the
// model answering in prose and passes through to the user. Model
// transport failures surface as ASSISTANT_UNAVAILABLE; a reply that
// claims a tool call but is malformed or names an unknown tool surfaces
// as COMMAND_NOT_UNDERSTOOD.
func (s *commandService) Execute(ctx context.Context, userID, message string) (*CommandResult, error) {
	reply, err := s.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAssistantUnavailable, err)
	}

	call, found, err := parseToolCall(reply)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCommandNotUnderstood, err)
	}
	if !found {
		return &CommandResult{
			Action: "reply",
			Reply:  strings.TrimSpace(reply),
		}, nil
	}

	switch call.Tool {
	case "add_expense":
		text := call.Args.Text
		if text == "" {
			text = message
		}
		expense, err := s.expenses.AddFromText(ctx, userID, text)
		if err != nil {
			return nil, err
		}
		return &CommandResult{
			Action: "add_expense",
			Reply:  fmt.Sprintf("Recorded %.2f under %s.", expense.Amount, expense.Category),
			Data:   expense,
		}, nil

	case "edit_last_expense":
		expense, err := s.expenses.EditLast(userID, call.Args.Amount, call.Args.Description)
		if err != nil {
			return nil, err
		}
		return &CommandResult{
			Action: "edit_last_expense",
			Reply:  fmt.Sprintf("Updated your last expense to %.2f.", expense.Amount),
			Data:   expense,
		}, nil

	case "list_expenses":
		query := call.Args.Query
		if query == "" {
			query = message
		}
		result, err := s.expenses.Query(userID, query)
		if err != nil {
			return nil, err
		}
		return &CommandResult{
			Action: "list_expenses",
			Reply:  fmt.Sprintf("Found %d expenses totalling %.2f.", len(result.Expenses), result.Total),
			Data:   result,
		}, nil

	case "suggest_spending":
		query := call.Args.Query
		if query == "" {
			query = message
		}
		advice, err := s.advisor.Suggest(ctx, userID, query)
		if err != nil {
			return nil, err
		}
		return &CommandResult{
			Action: "suggest_spending",
			Reply:  advice.Message,
			Data:   advice,
		}, nil

	default:
		return nil, apperrors.WithMessage(apperrors.ErrCommandNotUnderstood, fmt.Sprintf("unknown tool %q", call.Tool))
	}
}

// parseToolCall extracts the tool-call JSON from a model reply,
// tolerating code fences and surrounding prose. found is false when the
// reply contains no JSON object at all: that is the model answering in
// prose, not a failed tool call.
func parseToolCall(reply string) (*toolCall, bool, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, false, nil
	}

	var call toolCall
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &call); err != nil {
		return nil, false, fmt.Errorf("invalid tool call JSON: %w", err)
	}
	if call.Tool == "" {
		return nil, false, fmt.Errorf("model reply missing tool name")
	}
	return &call, true, nil
}
