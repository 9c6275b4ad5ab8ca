// Package sitechat crawls a website, indexes its textual content for
// semantic retrieval, and answers natural language questions about it
// through a retrieval-augmented LLM completion call.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, gemini/, sqlite/), and
// orchestration lives in crawl/, index/, and chat/.
package sitechat
