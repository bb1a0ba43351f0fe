package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrSessionClosed      = fmt.Errorf("session closed")
	ErrSlowConsumer       = fmt.Errorf("session send buffer full")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrInvalidRegister    = fmt.Errorf("invalid registration request")
	ErrUserAlreadyExists  = fmt.Errorf("user with this email or username already exists")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrRoomNameRequired   = fmt.Errorf("room name is required")
)
