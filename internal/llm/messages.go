package llm

import "github.com/tmc/langchaingo/llms"

// System builds a system message.
func System(content string) llms.MessageContent {
	return llms.TextParts(llms.ChatMessageTypeSystem, content)
}

// Human builds a user message.
func Human(content string) llms.MessageContent {
	return llms.TextParts(llms.ChatMessageTypeHuman, content)
}

// AI builds a plain-text assistant message.
func AI(content string) llms.MessageContent {
	return llms.TextParts(llms.ChatMessageTypeAI, content)
}

// AIToolCall builds the assistant message that carries a tool call,
// so the follow-up tool response has its matching request in history.
func AIToolCall(call ToolCall) llms.MessageContent {
	return llms.MessageContent{
		Role: llms.ChatMessageTypeAI,
		Parts: []llms.ContentPart{
			llms.ToolCall{
				ID:   call.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      call.Name,
					Arguments: string(call.Arguments),
				},
			},
		},
	}
}

// ToolResponse builds the tool-result message for a completed call.
func ToolResponse(call ToolCall, content string) llms.MessageContent {
	return llms.MessageContent{
		Role: llms.ChatMessageTypeTool,
		Parts: []llms.ContentPart{
			llms.ToolCallResponse{
				ToolCallID: call.ID,
				Name:       call.Name,
				Content:    content,
			},
		},
	}
}
