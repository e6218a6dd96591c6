package state

import (
	"errors"
	"time"
)

const (
	MsgTokenRequired = "Bot token is required"
	MsgQuotaReached  = "Maximum 10 bots per account reached"
	MsgCreateFailed  = "Failed to create bot. Please check your token."
	MsgUpdateFailed  = "Failed to update bot"
	MsgDeleteFailed  = "Failed to delete bot"
	MsgBotNotFound   = "Bot not found"

	MsgCreated = "Bot created successfully!"
	MsgUpdated = "Bot updated successfully!"
	MsgDeleted = "Bot deleted successfully!"
)

// SuccessTTL is how long a success banner stays visible.
const SuccessTTL = 3 * time.Second

// ErrFormClosed is returned when a create is submitted outside the dashboard
// create modal.
var ErrFormClosed = errors.New("create form is not open")
