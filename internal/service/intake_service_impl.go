package service

import (
	"context"
	"slices"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
)

const (
	GreetingMessage   = "What project would you like to plan today? Please provide the project name, description, and timeline."
	ProcessingMessage = "Processing your request..."
	FailureMessage    = "Sorry, there was an error generating the project plan. Please try again."
)

type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

type Message struct {
	From    Sender
	Content string
}

// Conversation is an append-only chat transcript. Methods return new values.
type Conversation struct {
	messages []Message
}

// NewConversation starts a transcript with the greeting.
func NewConversation() Conversation {
	return Conversation{messages: []Message{{From: SenderBot, Content: GreetingMessage}}}
}

func (c Conversation) Messages() []Message { return slices.Clone(c.messages) }

func (c Conversation) Len() int { return len(c.messages) }

// Last returns the newest message.
func (c Conversation) Last() Message {
	if len(c.messages) == 0 {
		return Message{}
	}
	return c.messages[len(c.messages)-1]
}

func (c Conversation) append(msgs ...Message) Conversation {
	next := make([]Message, 0, len(c.messages)+len(msgs))
	next = append(next, c.messages...)
	return Conversation{messages: append(next, msgs...)}
}

type intakeService struct {
	plans PlanService
}

func NewIntakeService(plans PlanService) IntakeService {
	return &intakeService{plans: plans}
}

func (s *intakeService) Submit(ctx context.Context, conv Conversation, text string) (Conversation, *domain.Project, error) {
	if strings.TrimSpace(text) == "" {
		return conv, nil, domain.NewValidationError("message", "is empty")
	}
	conv = conv.append(
		Message{From: SenderUser, Content: text},
		Message{From: SenderBot, Content: ProcessingMessage},
	)

	project, err := s.plans.CreateProjectPlan(ctx, ProjectInfo{Name: DefaultProjectName, Description: text})
	if err != nil {
		return conv.append(Message{From: SenderBot, Content: FailureMessage}), nil, err
	}
	return conv, project, nil
}
