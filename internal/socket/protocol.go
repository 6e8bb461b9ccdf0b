package socket

// Message is a notification sent to a running launcher
type Message struct {
	Command string `json:"command"`
	Text    string `json:"text,omitempty"`
}

// Response is the server's acknowledgement
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Command types
const (
	// CommandReload asks the launcher to reload its shortcuts file; Text
	// says who changed it
	CommandReload = "reload"
	// CommandStatus shows Text in the status line
	CommandStatus = "status"
)
