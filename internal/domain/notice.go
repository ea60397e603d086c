package domain

// Severity classifies a user-visible notice
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a user-visible feedback message
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Info builds an info notice
func Info(message string) Notice {
	return Notice{Severity: SeverityInfo, Message: message}
}

// Success builds a success notice
func Success(message string) Notice {
	return Notice{Severity: SeveritySuccess, Message: message}
}

// Error builds an error notice
func Error(message string) Notice {
	return Notice{Severity: SeverityError, Message: message}
}
