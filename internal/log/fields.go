package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldChatID    = "chat_id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDay       = "day"
	FieldTotal     = "total"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentTelegram  = "telegram"
	ComponentScheduler = "scheduler"
	ComponentLedger    = "ledger"
	ComponentClassify  = "classify"
	ComponentEvents    = "events"
)
