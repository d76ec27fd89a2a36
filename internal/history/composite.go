package history

import "github.com/dshills/folio/internal/document"

// CompositeCommand bundles an ordered list of commands into one undo
// entry. Apply runs them in order; Revert runs them in reverse.
type CompositeCommand struct {
	commands    []Command
	description string
}

// NewComposite creates a composite with a UI label.
func NewComposite(description string, commands ...Command) *CompositeCommand {
	return &CompositeCommand{commands: commands, description: description}
}

// Add appends a command to the composite.
func (c *CompositeCommand) Add(cmd Command) {
	c.commands = append(c.commands, cmd)
}

// Len returns the number of bundled commands.
func (c *CompositeCommand) Len() int { return len(c.commands) }

// Apply runs every command in order.
func (c *CompositeCommand) Apply(doc *document.Document) {
	for _, cmd := range c.commands {
		cmd.Apply(doc)
	}
}

// Revert runs every command's revert in reverse order.
func (c *CompositeCommand) Revert(doc *document.Document) {
	for i := len(c.commands) - 1; i >= 0; i-- {
		c.commands[i].Revert(doc)
	}
}

// Before returns the first command's before position.
func (c *CompositeCommand) Before() document.Position {
	if len(c.commands) == 0 {
		return document.Position{}
	}
	return c.commands[0].Before()
}

// After returns the last command's after position.
func (c *CompositeCommand) After() document.Position {
	if len(c.commands) == 0 {
		return document.Position{}
	}
	return c.commands[len(c.commands)-1].After()
}

// Description returns the composite's label.
func (c *CompositeCommand) Description() string { return c.description }
