package application

import "context"

// Command represents a request to produce a plan.
type Command interface {
	CommandName() string
}

// CommandHandler handles a specific command type and returns its result.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}
