package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeRename Type = "rename"
	TypeDue    Type = "due"
	TypeNote   Type = "note"
	TypeDelete Type = "delete"
	TypeClear  Type = "clear"
	TypeView   Type = "view"
	TypeSort   Type = "sort"
	TypeFilter Type = "filter"
	TypeMove   Type = "move"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type RenameArgs struct {
	Text string
}

type DueArgs struct {
	When string
}

type NoteArgs struct {
	Text string
}

type ViewArgs struct {
	Mode string
}

type SortArgs struct {
	By        string
	Direction string
}

type FilterArgs struct {
	Completed   bool
	Uncompleted bool
}

type MoveArgs struct {
	From int
	To   int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Rename *RenameArgs
	Due    *DueArgs
	Note   *NoteArgs
	View   *ViewArgs
	Sort   *SortArgs
	Filter *FilterArgs
	Move   *MoveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return Command{Type: TypeDone, Raw: input}, nil
	case TypeRename:
		return parseRename(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeNote:
		return parseNote(input, args)
	case TypeDelete:
		return Command{Type: TypeDelete, Raw: input}, nil
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeView:
		return parseView(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeMove:
		return parseMove(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseRename(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires new text"}
	}
	return Command{Type: TypeRename, Raw: raw, Rename: &RenameArgs{Text: text}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due requires a time, or `none` to unschedule"}
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{When: strings.Join(args, " ")}}, nil
}

func parseNote(raw string, args []string) (Command, error) {
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Text: strings.TrimSpace(strings.Join(args, " "))}}, nil
}

func parseView(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "view requires one of: today, past, future"}
	}
	mode := strings.ToLower(args[0])
	switch mode {
	case "today", "past", "future":
		return Command{Type: TypeView, Raw: raw, View: &ViewArgs{Mode: mode}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view mode: %s", mode)}
	}
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires one of: time, priority"}
	}
	by := strings.ToLower(args[0])
	if by != "time" && by != "priority" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort dimension: %s", by)}
	}
	direction := "asc"
	if len(args) > 1 {
		direction = strings.ToLower(args[1])
		if direction != "asc" && direction != "desc" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort direction: %s", args[1])}
		}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{By: by, Direction: direction}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires: completed, uncompleted, or all"}
	}
	out := FilterArgs{}
	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "completed":
			out.Completed = true
		case "uncompleted":
			out.Uncompleted = true
		case "all":
			// Both flags off means no restriction.
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", arg)}
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &out}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires from and to indexes"}
	}
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad from index: %s", args[0])}
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad to index: %s", args[1])}
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}
