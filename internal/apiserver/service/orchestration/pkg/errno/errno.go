package errno

import (
	"errors"
)

var (
	ErrToolAlreadyRegistered     = errors.New("tool already registered")
	ErrStrategyAlreadyRegistered = errors.New("strategy already registered")
	ErrUnknownTool               = errors.New("unknown tool")
	ErrDuplicatePlaceholder      = errors.New("duplicate placeholder among enabled tools")
	ErrAssistantNotFound         = errors.New("assistant not found")
)
