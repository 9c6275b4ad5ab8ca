package chat

import (
	"fmt"
	"strings"

	"github.com/jmwsk/sitechat"
)

// answerInstruction constrains the model to the retrieved context.
const answerInstruction = "Answer the question based only on the following context. If the answer is not in the context, say you don't know."

// BuildPrompt builds the completion prompt from retrieved chunks, recent
// conversation history, and the question. Each chunk is tagged with its
// source URL so answers can cite pages.
func BuildPrompt(matches []*sitechat.ScoredChunk, history []*sitechat.ChatTurn, question string) string {
	var sb strings.Builder
	sb.WriteString(answerInstruction)
	sb.WriteString("\n\n<context>\n")
	for _, match := range matches {
		sb.WriteString("<chunk>\n")
		fmt.Fprintf(&sb, "<source>%s</source>\n", match.Chunk.SourceURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", match.Chunk.Text)
		sb.WriteString("</chunk>\n")
	}
	sb.WriteString("</context>\n")

	if len(history) > 0 {
		sb.WriteString("\n<history>\n")
		for _, turn := range history {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", turn.Question, turn.Answer)
		}
		sb.WriteString("</history>\n")
	}

	fmt.Fprintf(&sb, "\nQuestion: %s", question)
	return sb.String()
}
