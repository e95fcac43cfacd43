package update_session_status

// Action действие над идущей или предстоящей сессией
type Action string

const (
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionNoShow   Action = "no-show"
	ActionAbort    Action = "abort"
)

// UpdateSessionStatusRequest HTTP request model, причина используется только для abort
type UpdateSessionStatusRequest struct {
	Action Action `json:"action"`
	Reason string `json:"reason,omitempty"`
}
