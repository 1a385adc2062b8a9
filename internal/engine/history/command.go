package history

import (
	"fmt"

	"github.com/JaakkoJSeppala/coreedit/internal/engine/buffer"
)

// Kind tags the variants of Command.
type Kind uint8

const (
	// KindInsert inserts text at a position.
	KindInsert Kind = iota
	// KindDelete removes a run of bytes, capturing them on first apply.
	KindDelete
	// KindComposite applies a list of children as one unit.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Command is a tagged record describing one reversible edit. Commands are
// created by the constructors below and owned by the Log that executes
// them; a command must not be handed to a second Log. Apply and revert
// are dispatched on the tag, so execute-undo-execute and
// undo-execute-undo round-trip the buffer exactly.
type Command struct {
	kind Kind

	pos    buffer.ByteOffset
	text   string            // insert payload, or captured bytes once a delete has run
	length buffer.ByteOffset // delete extent before capture

	inserted buffer.ByteOffset // bytes the buffer actually took, which can
	// differ from len(text) when the buffer normalises line endings
	captured bool
	children []*Command
}

// Insert returns a command that inserts text at pos.
func Insert(pos buffer.ByteOffset, text string) *Command {
	return &Command{kind: KindInsert, pos: pos, text: text}
}

// Delete returns a command that removes length bytes starting at pos.
// The removed bytes are captured when the command first runs, so undo
// restores the literal text even after unrelated later edits.
func Delete(pos, length buffer.ByteOffset) *Command {
	return &Command{kind: KindDelete, pos: pos, length: length}
}

// Composite returns a command that applies children in order and reverts
// them in reverse order. Callers building a multi-cursor group are
// expected to order children from the highest position down, so each
// child's recorded position is still valid when it runs.
func Composite(children ...*Command) *Command {
	return &Command{kind: KindComposite, children: children}
}

// Kind returns the command's tag.
func (c *Command) Kind() Kind { return c.kind }

// Pos returns the command's position. Zero for composites.
func (c *Command) Pos() buffer.ByteOffset { return c.pos }

// Text returns the insert payload, or the captured bytes of an executed
// delete.
func (c *Command) Text() string { return c.text }

// Children returns a composite's child commands.
func (c *Command) Children() []*Command { return c.children }

// InsertedLen returns how many bytes an executed insert added to the
// buffer. Zero before the command has run.
func (c *Command) InsertedLen() buffer.ByteOffset { return c.inserted }

func (c *Command) String() string {
	switch c.kind {
	case KindInsert:
		return fmt.Sprintf("insert@%d %q", c.pos, c.text)
	case KindDelete:
		if c.captured {
			return fmt.Sprintf("delete@%d %q", c.pos, c.text)
		}
		return fmt.Sprintf("delete@%d +%d", c.pos, c.length)
	case KindComposite:
		return fmt.Sprintf("composite(%d)", len(c.children))
	}
	return "unknown"
}

// apply executes c against buf. The single dispatch point for every
// command kind.
func apply(c *Command, buf *buffer.Buffer) error {
	switch c.kind {
	case KindInsert:
		if c.text == "" {
			return nil
		}
		end, err := buf.Insert(c.pos, c.text)
		if err != nil {
			return err
		}
		c.inserted = end - c.pos
		return nil

	case KindDelete:
		if c.length == 0 {
			return nil
		}
		if !c.captured {
			c.text = buf.TextRange(c.pos, c.pos+c.length)
			c.captured = true
		}
		return buf.Delete(c.pos, c.pos+c.length)

	case KindComposite:
		for i, child := range c.children {
			if err := apply(child, buf); err != nil {
				for j := i - 1; j >= 0; j-- {
					_ = revert(c.children[j], buf)
				}
				return fmt.Errorf("composite child %d: %w", i, err)
			}
		}
		return nil
	}
	return fmt.Errorf("history: unknown command kind %d", c.kind)
}

// revert undoes an applied c against buf.
func revert(c *Command, buf *buffer.Buffer) error {
	switch c.kind {
	case KindInsert:
		if c.inserted == 0 {
			return nil
		}
		return buf.Delete(c.pos, c.pos+c.inserted)

	case KindDelete:
		if c.length == 0 {
			return nil
		}
		_, err := buf.Insert(c.pos, c.text)
		return err

	case KindComposite:
		for i := len(c.children) - 1; i >= 0; i-- {
			if err := revert(c.children[i], buf); err != nil {
				return fmt.Errorf("composite child %d: %w", i, err)
			}
		}
		return nil
	}
	return fmt.Errorf("history: unknown command kind %d", c.kind)
}
