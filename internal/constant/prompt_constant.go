package constant

// System prompts are compiled in rather than loaded from template files so the
// binary stays self-contained. Their token length is checked against
// RAG_MAX_SYSTEM_PROMPT_LENGTH at startup.

const RagSystemPromptV1 = `Du bist ein hilfreicher Assistent für eine interne Wissensdatenbank.
Beantworte Fragen ausschließlich auf Grundlage des bereitgestellten Kontexts.
Wenn der Kontext keine Antwort enthält, sage ehrlich, dass du es nicht weißt.
Antworte präzise, sachlich und auf Deutsch.`

const CompareSystemPromptV1 = `Du erhältst eine Frage und einen Kontext.
Prüfe, ob die Antwort auf die Frage im Kontext enthalten ist.
Antworte ausschließlich mit "JA", wenn die Antwort im Kontext gefunden wird,
und mit "NEIN", wenn sie nicht vorhanden ist.`

// ApologyMessage replaces the response stream when any pipeline stage fails.
// Internals are never leaked to the client.
const ApologyMessage = "I'm sorry, but I encountered an error while processing your request. Please try again later."

// NoDataContext is rendered into the prompt when the gate rejects the query
// or the retrieved context does not answer it.
const NoDataContext = "[Retrieved Documents]: [NO DATA]\n"

// GreetingMessage is returned by the greeting route.
const GreetingMessage = "Hallo! Wie kann ich Ihnen helfen?"

// AffirmativeToken returns the token the context-sufficiency check looks for
// in the comparison model's answer.
func AffirmativeToken(language string) string {
	if language == "en" {
		return "yes"
	}
	return "ja"
}
