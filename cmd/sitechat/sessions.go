package main

import (
	"fmt"

	"github.com/jmwsk/sitechat"
)

// Run executes the sessions command.
func (c *SessionsCmd) Run(deps *Dependencies) error {
	filter := sitechat.SessionFilter{Limit: c.Limit}
	if c.Seed != "" {
		filter.SeedURL = &c.Seed
	}

	summaries, err := deps.Sessions.FindSessions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions found. Use 'sitechat crawl' to create one.")
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-9s  %-4s  %3d pages  %s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Status, s.Mode, s.Stats.Pages, s.SeedURL)
	}

	return nil
}
