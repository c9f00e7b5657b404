package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/brightwell/internal/templates"
)

type TemplateCmd struct {
	List  TemplateListCmd  `cmd:"" help:"List habit templates."`
	Apply TemplateApplyCmd `cmd:"" help:"Add a template's habits."`
}

type TemplateListCmd struct {
	Verbose bool `help:"Show each template's habits." short:"v"`
}

func (c *TemplateListCmd) Run(ctx *Context) error {
	for _, t := range templates.All() {
		ctx.printf("%s %-16s %s\n", t.Icon, t.ID, t.Description)
		if !c.Verbose {
			continue
		}
		for _, h := range t.Habits {
			ctx.printf("     - %s: %s\n", h.Name, h.Description)
		}
	}
	return nil
}

type TemplateApplyCmd struct {
	ID string `arg:"" help:"Template id (see 'template list')."`
}

func (c *TemplateApplyCmd) Run(ctx *Context) error {
	tmpl, ok := templates.Get(c.ID)
	if !ok {
		return fmt.Errorf("unknown template %q", c.ID)
	}

	res, err := templates.Apply(ctx.Store, tmpl, ctx.Clock.Now())
	if err != nil {
		return err
	}

	ctx.printf("Applied %s %s: %d added", tmpl.Icon, tmpl.Name, len(res.Added))
	if len(res.Skipped) > 0 {
		ctx.printf(", %d already present (%s)", len(res.Skipped), strings.Join(res.Skipped, ", "))
	}
	ctx.println()
	return nil
}
