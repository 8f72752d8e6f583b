package runtime

import (
	"context"

	"github.com/aretw0/draftkit/pkg/autoformat"
	"github.com/aretw0/draftkit/pkg/document"
	"github.com/aretw0/draftkit/pkg/domain"
)

// Key command names understood by OnKeyCommand.
const (
	CommandBold          = "bold"
	CommandItalic        = "italic"
	CommandUnderline     = "underline"
	CommandCode          = "code"
	CommandStrikethrough = "strikethrough"
	CommandBackspace     = "backspace"
	CommandTab           = "tab"
	CommandShiftTab      = "shift-tab"
)

const kindAdjustDepth = "adjust-depth"

var styleCommands = map[string]document.InlineStyle{
	CommandBold:          document.Bold,
	CommandItalic:        document.Italic,
	CommandUnderline:     document.Underline,
	CommandCode:          document.Code,
	CommandStrikethrough: document.Strikethrough,
}

// OnKeyCommand handles a named editor command. Unknown commands, and known
// ones that do not apply at the caret, are reported as not handled so the
// host falls back to its default behavior.
func (e *Engine) OnKeyCommand(ctx context.Context, command string, s *document.State) (domain.HandleResult, *document.State) {
	var (
		next       *document.State
		kind, name string
		err        error
	)

	b := s.CaretBlock()
	switch command {
	case CommandBackspace:
		sel := s.Selection()
		if !sel.IsCollapsed() || sel.Focus.Offset != 0 || b.Type() == document.Unstyled {
			return domain.NotHandled, s
		}
		if b.Type().IsList() && b.Depth() > 0 {
			kind, name = kindAdjustDepth, string(b.Type())
			next, err = e.doc.AdjustDepth(s, -1, document.MaxDepth)
			break
		}
		kind, name = autoformat.SetBlockType.String(), string(document.Unstyled)
		var c *document.Content
		if c, err = e.doc.SetBlockType(s.Content(), sel, document.Unstyled); err == nil {
			next = s.PushPreservingStyle(c)
		}

	case CommandTab, CommandShiftTab:
		// Outside lists the host decides what Tab means.
		if !b.Type().IsList() {
			return domain.NotHandled, s
		}
		delta := 1
		if command == CommandShiftTab {
			delta = -1
		}
		kind, name = kindAdjustDepth, string(b.Type())
		next, err = e.doc.AdjustDepth(s, delta, document.MaxDepth)

	default:
		style, ok := styleCommands[command]
		if !ok {
			return domain.NotHandled, s
		}
		kind, name = autoformat.ToggleInlineStyle.String(), string(style)
		next, err = e.doc.ToggleInlineStyle(s, style)
	}

	if err != nil {
		err = &domain.TransformError{Kind: kind, Name: name, Err: err}
		e.emitTransformErrorKind(ctx, domain.SourceCommand, command, kind, name, err)
		return domain.Handled, s
	}
	e.emitTriggerKind(ctx, domain.SourceCommand, command, kind, name)
	_ = e.persist(ctx, next, false)
	return domain.Handled, next
}
