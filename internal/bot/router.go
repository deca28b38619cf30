package bot

import "strings"

// ActionKind tags the routing decision for one inbound text.
type ActionKind int

const (
	// ActionLedgerText falls through to the extraction pipeline.
	ActionLedgerText ActionKind = iota
	ActionStart
	ActionTotal
	ActionChart
	ActionExport
)

type Action struct {
	Kind ActionKind
	Text string // original text, set for ActionLedgerText
}

// Dispatch routes one message text: exact command tokens first, then
// case-insensitive phrase equality, then the ledger pipeline. The
// phrases mirror the reply keyboard, so a tap on a keyboard button and
// a typed phrase take the same path.
func Dispatch(text string) Action {
	trimmed := strings.TrimSpace(text)

	switch trimmed {
	case "/start":
		return Action{Kind: ActionStart}
	case "/total":
		return Action{Kind: ActionTotal}
	case "/chart":
		return Action{Kind: ActionChart}
	case "/export":
		return Action{Kind: ActionExport}
	}

	switch strings.ToLower(trimmed) {
	case "итого за сегодня":
		return Action{Kind: ActionTotal}
	case "график":
		return Action{Kind: ActionChart}
	case "экспорт":
		return Action{Kind: ActionExport}
	}

	return Action{Kind: ActionLedgerText, Text: text}
}
