package main

import (
	"bufio"
	"fmt"
	"strings"
)

// Run executes the chat command: an interactive question loop over the
// crawled site. The loop ends on EOF or an "exit"/"quit" line.
func (c *ChatCmd) Run(deps *Dependencies) error {
	engine, session, err := buildEngine(deps, c.URL, c.mode(), c.TopK, c.History)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, "Ask a question about the site (exit to quit).")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		// A failed turn is reported but does not end the conversation.
		_ = askAndPrint(deps, engine, session.ID, question)
		fmt.Fprintln(deps.Stdout)
	}

	return scanner.Err()
}
