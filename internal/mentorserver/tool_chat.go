package mentorserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/chat"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/toolutil"
)

// MentorChatInput is the input for mentor_chat. An empty conversation_id
// starts a new conversation.
type MentorChatInput struct {
	UserID         string `json:"user_id"`
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

// MentorChatOutput carries the assistant reply and the conversation ID to
// pass on the next turn.
type MentorChatOutput struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

func registerMentorChat(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mentor_chat",
		Description: "Send a message to the AI career mentor. The first message of a conversation builds a briefing from the candidate's profile, skill gaps, and available learning resources; later messages continue the same conversation. Omit conversation_id to start a new conversation.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input MentorChatInput) (*mcp.CallToolResult, MentorChatOutput, error) {
		var out MentorChatOutput
		err := engine.TrackOperation(ctx, "mentor_chat", func(ctx context.Context) error {
			var err error
			out, err = runMentorChat(ctx, input)
			return err
		})
		if err != nil {
			return nil, MentorChatOutput{}, err
		}
		return nil, out, nil
	})
}

// runMentorChat is one conversation turn behind mentor_chat.
func runMentorChat(ctx context.Context, input MentorChatInput) (MentorChatOutput, error) {
	if mentor == nil {
		return MentorChatOutput{}, fmt.Errorf("%w: mentor chat is not configured", engine.ErrUpstream)
	}
	if input.UserID == "" {
		return MentorChatOutput{}, fmt.Errorf("%w: user_id is required", engine.ErrInvalidInput)
	}

	profile, err := toolutil.ProfileFor(ctx, st, input.UserID)
	if err != nil {
		return MentorChatOutput{}, err
	}

	conversationID := input.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	reply, err := mentor.SendTurn(ctx, chat.SessionKey(input.UserID, conversationID), profile, input.Message)
	if err != nil {
		if errors.Is(err, engine.ErrSessionBusy) {
			return MentorChatOutput{}, fmt.Errorf("a previous message is still being answered, retry shortly: %w", err)
		}
		return MentorChatOutput{}, err
	}
	return MentorChatOutput{ConversationID: conversationID, Reply: reply}, nil
}
