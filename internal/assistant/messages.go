package assistant

import (
	"fmt"
	"strings"
)

// User-facing message catalog. Every reply the assistant sends comes
// from here so wording stays consistent and no raw technical string
// leaks to the user.

const (
	MsgGreeting = "Hello! I can help you manage your ISMS: create, list, update or delete " +
		"scopes, assets, persons, processes, controls, incidents, documents and scenarios, " +
		"or generate compliance reports. What would you like to do?"

	MsgThanks = "You're welcome! Anything else I can do for your ISMS?"

	MsgFallback = "I didn't catch that. You can ask me to create, list, update or delete " +
		"ISMS objects, generate a report, or ask a question about information security."

	MsgStoreUnavailable = "The ISMS backend is not reachable right now. Please try again in a moment."

	MsgReasonerUnavailable = "The language model is currently unavailable, so I can only run " +
		"structured commands like \"create asset MyServer\" or \"list scopes\"."

	MsgNoDomain = "No ISMS domain is available yet. Please set up a domain in your ISMS backend first."

	MsgNoScopes = "There are no scopes yet. Create one first, for example: create scope MyScope."

	MsgNoDocument = "There is no processed document in this conversation. Upload a document first, " +
		"then ask me to analyze or import it."
)

// MsgMissingName asks for the mandatory name of a new object.
func MsgMissingName(objectType string) string {
	return fmt.Sprintf("What name should the %s have?\n\nExample: create %s MyName SRV A short description",
		objectType, objectType)
}

// MsgMissingTarget asks which object an operation should act on.
func MsgMissingTarget(objectType string) string {
	return fmt.Sprintf("Which %s do you mean? Give me its name or ID, for example: get %s MyName.",
		objectType, objectType)
}

// MsgObjectNotFound reports a failed name/ID lookup.
func MsgObjectNotFound(objectType string) string {
	return fmt.Sprintf("I couldn't find that %s. Try \"list %ss\" to see what exists.", objectType, objectType)
}

// MsgInvalidSubType reports a subtype outside the domain catalog.
func MsgInvalidSubType(subType string, available []string) string {
	return fmt.Sprintf("%q is not a valid subtype here. Available subtypes: %s.",
		subType, strings.Join(available, ", "))
}

// MsgSubtypeSelection opens a subtype follow-up with a numbered list.
func MsgSubtypeSelection(objectType, name string, available []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Which subtype should the %s %q have?\n\n", objectType, name)
	for i, st := range available {
		fmt.Fprintf(&b, "%d. %s\n", i+1, st)
	}
	b.WriteString("\nReply with a number or the subtype name.")
	return b.String()
}

// MsgUnknownReport reports a template the backend does not offer.
func MsgUnknownReport(reportName string, available []string) string {
	return fmt.Sprintf("This installation has no %q report. Available reports: %s.",
		reportName, strings.Join(available, ", "))
}

// MsgReportScopeSelection opens a report-scope follow-up with a numbered list.
func MsgReportScopeSelection(reportName string, scopes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Which scope do you want the %q report for?\n\n", reportName)
	for i, name := range scopes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	b.WriteString("\nReply with a number or the scope name.")
	return b.String()
}

// MsgAmbiguousSelection re-lists the options after an answer matched none.
func MsgAmbiguousSelection(options []string) string {
	return fmt.Sprintf("That didn't match any of the offered options (%s), so I cancelled the selection. "+
		"Please start the command again.", strings.Join(options, ", "))
}

// MsgFollowUpPending reminds the user an answer is still owed.
func MsgFollowUpPending() string {
	return "I'm still waiting for your answer to my previous question. Please reply to it first."
}

// MsgCreated confirms a create, echoing the optional details that were set.
func MsgCreated(objectType, name, abbreviation, subType string) string {
	msg := fmt.Sprintf("Created %s %q", objectType, name)
	if abbreviation != "" {
		msg += fmt.Sprintf(" (abbreviation: %s)", abbreviation)
	}
	if subType != "" {
		msg += fmt.Sprintf(" (subtype: %s)", subType)
	}
	return msg + "."
}

// MsgUpdated confirms an update, naming the fields that changed.
func MsgUpdated(objectType, name string, fields []string) string {
	return fmt.Sprintf("Updated %s %q (%s).", objectType, name, strings.Join(fields, ", "))
}

// MsgNothingToUpdate asks for the new values of an update.
func MsgNothingToUpdate(objectType, name string) string {
	return fmt.Sprintf("What should I change on %s %q?\n\nExample: update %s %s NewName NEW A new description",
		objectType, name, objectType, name)
}

// MsgDeleted confirms a delete.
func MsgDeleted(objectType, name string) string {
	return fmt.Sprintf("Deleted %s %q.", objectType, name)
}

// MsgEmptyList reports an empty listing.
func MsgEmptyList(objectType string) string {
	return fmt.Sprintf("No %ss found.", objectType)
}

// MsgReportGenerated confirms a generated report with its key facts.
func MsgReportGenerated(reportName, scopeName string, size int) string {
	return fmt.Sprintf("Report %q generated for scope %q.\n\n- Format: PDF\n- Size: %d bytes",
		reportName, scopeName, size)
}

// knowledgeTopic is one static knowledge-base answer.
type knowledgeTopic struct {
	keywords []string
	answer   string
}

// knowledgeTopics answer common conceptual questions without a model
// call. Checked most-specific first.
var knowledgeTopics = []knowledgeTopic{
	{
		keywords: []string{"scope", "asset"},
		answer: "A scope defines the boundary of your ISMS: which parts of the organization " +
			"the management system covers. An asset is a concrete thing of value inside that " +
			"boundary, such as a server, an application or a dataset. Scopes contain assets; " +
			"assets are assessed for risk within a scope.",
	},
	{
		keywords: []string{"asset"},
		answer: "An asset is anything of value to your organization that needs protection: " +
			"IT systems, applications, data, even people and facilities. In the ISMS each asset " +
			"is recorded with an owner and assessed for risks.\n\nCreate one with: create asset MyServer.",
	},
	{
		keywords: []string{"scope"},
		answer: "A scope is the boundary of your information security management system. It " +
			"defines which organizational units, locations and systems the ISMS covers, and it " +
			"is the anchor for reports like the Statement of Applicability.\n\nCreate one with: " +
			"create scope MyScope.",
	},
	{
		keywords: []string{"isms"},
		answer: "An ISMS (Information Security Management System) is the set of policies, " +
			"processes and controls an organization uses to manage information security risks, " +
			"typically following ISO 27001. It covers scopes, assets, risk scenarios, controls " +
			"and the people responsible for them.",
	},
}

// KnowledgeAnswer returns a static answer for a conceptual question, or
// false when the question is outside the knowledge base.
func KnowledgeAnswer(message string) (string, bool) {
	msg := strings.ToLower(message)
	// Comparison question beats the single-topic answers.
	if strings.Contains(msg, "scope") && strings.Contains(msg, "asset") &&
		(strings.Contains(msg, "difference") || strings.Contains(msg, " vs") || strings.Contains(msg, "versus")) {
		return knowledgeTopics[0].answer, true
	}
	if strings.Contains(msg, "how") && strings.Contains(msg, "create") {
		for _, objectType := range []string{"scope", "asset", "person", "process", "control", "incident", "document", "scenario"} {
			if strings.Contains(msg, objectType) {
				return fmt.Sprintf("To create a %s, tell me:\n\n  create %s <name> <abbreviation> <description>\n\n"+
					"Quotes keep multi-word values together, for example: create %s \"My %s\" ABC \"A short description\". "+
					"Name is required, everything else is optional.", objectType, objectType, objectType, objectType), true
			}
		}
	}
	for _, topic := range knowledgeTopics[1:] {
		if !strings.Contains(msg, "what") && !strings.Contains(msg, "explain") && !strings.Contains(msg, "define") {
			continue
		}
		hit := true
		for _, kw := range topic.keywords {
			if !strings.Contains(msg, kw) {
				hit = false
				break
			}
		}
		// Single-topic answers must not swallow comparison questions.
		if hit && len(topic.keywords) == 1 {
			other := map[string]string{"asset": "scope", "scope": "asset"}[topic.keywords[0]]
			if other != "" && strings.Contains(msg, other) {
				continue
			}
		}
		if hit {
			return topic.answer, true
		}
	}
	return "", false
}
