package commands

import "fmt"

// Handlers binds parsed commands to application behavior. Nil handlers
// produce a CommandError instead of a panic so the palette can surface
// unsupported commands gracefully.
type Handlers struct {
	Add    func(AddArgs) error
	Done   func() error
	Rename func(RenameArgs) error
	Due    func(DueArgs) error
	Note   func(NoteArgs) error
	Delete func() error
	Clear  func() error
	View   func(ViewArgs) error
	Sort   func(SortArgs) error
	Filter func(FilterArgs) error
	Move   func(MoveArgs) error
}

func Execute(cmd Command, h Handlers) error {
	switch cmd.Type {
	case TypeAdd:
		if h.Add == nil {
			return missing(cmd.Type)
		}
		return h.Add(*cmd.Add)
	case TypeDone:
		if h.Done == nil {
			return missing(cmd.Type)
		}
		return h.Done()
	case TypeRename:
		if h.Rename == nil {
			return missing(cmd.Type)
		}
		return h.Rename(*cmd.Rename)
	case TypeDue:
		if h.Due == nil {
			return missing(cmd.Type)
		}
		return h.Due(*cmd.Due)
	case TypeNote:
		if h.Note == nil {
			return missing(cmd.Type)
		}
		return h.Note(*cmd.Note)
	case TypeDelete:
		if h.Delete == nil {
			return missing(cmd.Type)
		}
		return h.Delete()
	case TypeClear:
		if h.Clear == nil {
			return missing(cmd.Type)
		}
		return h.Clear()
	case TypeView:
		if h.View == nil {
			return missing(cmd.Type)
		}
		return h.View(*cmd.View)
	case TypeSort:
		if h.Sort == nil {
			return missing(cmd.Type)
		}
		return h.Sort(*cmd.Sort)
	case TypeFilter:
		if h.Filter == nil {
			return missing(cmd.Type)
		}
		return h.Filter(*cmd.Filter)
	case TypeMove:
		if h.Move == nil {
			return missing(cmd.Type)
		}
		return h.Move(*cmd.Move)
	default:
		return &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("no handler for command: %s", t)}
}
